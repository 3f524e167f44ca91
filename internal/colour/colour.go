// Package colour holds the pixel-level colour math used by the extractor:
// brightness, contrast, weighted RGB distance and raw pixel decoding.
package colour

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxDistance is the largest value Distance can return for 8-bit channels.
const MaxDistance float32 = 585225.0

var (
	ErrInvalidFormat          = errors.New("invalid colour format")
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Brightness is the luma-weighted sum of the channels, in the 0-255 range.
func (c Color) Brightness() float32 {
	return float32(299*uint32(c.R)+587*uint32(c.G)+114*uint32(c.B)) / 1000.0
}

// Contrast is the absolute brightness difference between c and other.
func (c Color) Contrast(other Color) float32 {
	d := c.Brightness() - other.Brightness()
	if d < 0 {
		return -d
	}
	return d
}

// BestContrast returns the candidate with the highest contrast against c.
// The first candidate wins ties. It panics with fewer than two candidates.
func (c Color) BestContrast(candidates []Color) Color {
	if len(candidates) < 2 {
		panic(fmt.Sprintf("colour: BestContrast needs at least 2 candidates, got %d", len(candidates)))
	}
	best := candidates[0]
	bestDiff := c.Contrast(best)
	for _, cand := range candidates[1:] {
		if diff := c.Contrast(cand); diff > bestDiff {
			best = cand
			bestDiff = diff
		}
	}
	return best
}

// Distance is a redmean-style weighted squared RGB distance. It is not
// symmetric under channel reordering and its maximum is MaxDistance.
func (c Color) Distance(other Color) float32 {
	dr := float32(c.R) - float32(other.R)
	dg := float32(c.G) - float32(other.G)
	db := float32(c.B) - float32(other.B)
	dr2, dg2, db2 := dr*dr, dg*dg, db*db
	meanRed := (float32(c.R) + float32(other.R)) / 2

	return 2*dr2 + 4*dg2 + 3*db2 + meanRed*(dr2-db2)/256
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) RGBString() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

// Format renders the colour as RGB(...) when rgb is set, hex otherwise.
func (c Color) Format(rgb bool) string {
	if rgb {
		return c.RGBString()
	}
	return c.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses a "#RRGGBB" string, case-insensitively. Any other shape,
// including the three-digit short form, is rejected with ErrInvalidFormat.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return Color{}, fmt.Errorf("%w: %q is not a #RRGGBB hex code", ErrInvalidFormat, s)
	}
	cf, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// ParseHexList parses every entry of values with ParseHex.
func ParseHexList(values []string) ([]Color, error) {
	colors := make([]Color, 0, len(values))
	for _, v := range values {
		c, err := ParseHex(v)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Join renders colors comma-separated, the way they are copied to the
// clipboard.
func Join(colors []Color, rgb bool) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = c.Format(rgb)
	}
	return strings.Join(parts, ",")
}
