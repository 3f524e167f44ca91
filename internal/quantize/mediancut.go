// Package quantize reduces a raw pixel buffer to a handful of representative
// colours. It adapts the go-quantize median cut to flat pixel buffers.
package quantize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	mediancut "github.com/ericpauley/go-quantize/quantize"

	"copycolors/internal/colour"
)

const minAlpha = 125

var ErrNoPixels = errors.New("no opaque pixels to quantize")

// MedianCut is the default quantizer. The zero value is ready to use.
type MedianCut struct{}

// Quantize samples every quality-th pixel of pix and returns at most count
// colours ordered by the number of sampled pixels they stand for. Pixels
// with alpha below 125 are skipped.
func (MedianCut) Quantize(pix []byte, format colour.PixelFormat, quality, count int) ([]colour.Color, error) {
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if quality < 1 {
		quality = 1
	}
	if err := format.Validate(pix); err != nil {
		return nil, err
	}

	samples, err := sample(pix, format, quality)
	if err != nil {
		return nil, err
	}

	q := mediancut.MedianCutQuantizer{Aggregation: mediancut.Mean}
	pal := q.Quantize(make(color.Palette, 0, count), samples)
	if len(pal) == 0 {
		return nil, ErrNoPixels
	}
	return byPopulation(pal, samples), nil
}

// sample packs the kept pixels into a one-row opaque image.
func sample(pix []byte, format colour.PixelFormat, quality int) (*image.NRGBA, error) {
	stride := format.Stride()
	pixels := len(pix) / stride

	kept := make([]byte, 0, (pixels/quality+1)*4)
	for i := 0; i < pixels; i += quality {
		px := pix[i*stride : (i+1)*stride]
		if format.Alpha(px) < minAlpha {
			continue
		}
		c, err := colour.Decode(px, format)
		if err != nil {
			return nil, err
		}
		kept = append(kept, c.R, c.G, c.B, 0xff)
	}
	if len(kept) == 0 {
		return nil, ErrNoPixels
	}

	n := len(kept) / 4
	return &image.NRGBA{Pix: kept, Stride: len(kept), Rect: image.Rect(0, 0, n, 1)}, nil
}

// byPopulation orders pal by how many samples fall closest to each entry.
// Entries with equal counts keep the quantizer's order.
func byPopulation(pal color.Palette, samples *image.NRGBA) []colour.Color {
	counts := make([]int, len(pal))
	for i := 0; i+3 < len(samples.Pix); i += 4 {
		p := samples.Pix[i : i+4]
		counts[pal.Index(color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]})]++
	}

	order := make([]int, len(pal))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	colors := make([]colour.Color, 0, len(pal))
	for _, i := range order {
		if counts[i] == 0 {
			continue
		}
		r, g, b, _ := pal[i].RGBA()
		colors = append(colors, colour.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
	}
	return colors
}
