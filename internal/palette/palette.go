// Package palette turns a decoded pixel buffer into an ordered, deduplicated
// palette of dominant colours.
package palette

import (
	"errors"
	"fmt"
	"sort"

	"copycolors/internal/colour"
	"copycolors/internal/quantize"
)

const (
	MinCount = 2
	MaxCount = 10

	// QualityHint is the sampling stride handed to the quantizer.
	QualityHint = 10
)

var (
	ErrNoData            = errors.New("no pixel data left to extract colours from")
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	ErrInvalidCount      = errors.New("invalid colour count")
)

// Quantizer reduces a pixel buffer to at most count representative colours.
type Quantizer interface {
	Quantize(pix []byte, format colour.PixelFormat, quality, count int) ([]colour.Color, error)
}

// Palette is an ordered list of distinct colours.
type Palette []colour.Color

// Request carries the per-image extraction parameters.
type Request struct {
	Count     int
	Excluded  colour.ExclusionSet
	Reference *colour.Color
}

type Option func(*Extractor)

// WithThreshold sets the normalised distance under which a pixel counts as
// a match for an excluded colour.
func WithThreshold(threshold float64) Option {
	return func(e *Extractor) {
		e.threshold = threshold
	}
}

type Extractor struct {
	quantizer Quantizer
	threshold float64
}

func NewExtractor(q Quantizer, opts ...Option) *Extractor {
	e := &Extractor{quantizer: q, threshold: colour.DefaultThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Extractor) Threshold() float64 {
	return e.threshold
}

// ValidateCount reports ErrInvalidCount for counts outside MinCount..MaxCount.
func ValidateCount(count int) error {
	if count < MinCount || count > MaxCount {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidCount, count, MinCount, MaxCount)
	}
	return nil
}

// Extract filters, quantizes, deduplicates and optionally contrast-sorts
// the colours of pix.
func (e *Extractor) Extract(pix []byte, format colour.PixelFormat, req Request) (Palette, error) {
	if err := ValidateCount(req.Count); err != nil {
		return nil, err
	}
	if len(pix) == 0 {
		return nil, ErrNoData
	}

	buf, bufFormat := pix, format
	if !req.Excluded.Empty() {
		filtered, err := colour.Filter(pix, format, req.Excluded, e.threshold)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		buf, bufFormat = filtered, colour.RGB
	} else if err := format.Validate(pix); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if len(buf) == 0 {
		return nil, ErrNoData
	}

	candidates, err := e.quantizer.Quantize(buf, bufFormat, QualityHint, req.Count)
	if errors.Is(err, quantize.ErrNoPixels) {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	if err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}

	p := Dedupe(candidates)
	if req.Reference != nil {
		p.SortByContrast(*req.Reference)
	}
	return p, nil
}

// Dedupe drops exact repeats, keeping first-seen order.
func Dedupe(colors []colour.Color) Palette {
	out := make(Palette, 0, len(colors))
	for _, c := range colors {
		if !out.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Contains(c colour.Color) bool {
	for _, existing := range p {
		if existing == c {
			return true
		}
	}
	return false
}

// SortByContrast orders p from the highest to the lowest contrast against
// ref. Equal contrasts keep their relative order.
func (p Palette) SortByContrast(ref colour.Color) {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Contrast(ref) > p[j].Contrast(ref)
	})
}

func (p Palette) Strings(rgb bool) []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Format(rgb)
	}
	return out
}

func (p Palette) Join(rgb bool) string {
	return colour.Join(p, rgb)
}
