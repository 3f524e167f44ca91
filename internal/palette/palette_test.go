package palette

import (
	"bytes"
	"errors"
	"testing"

	"copycolors/internal/colour"
	"copycolors/internal/quantize"
)

var (
	red    = colour.Color{R: 255}
	blue   = colour.Color{B: 255}
	gray   = colour.Color{R: 128, G: 128, B: 128}
	uniRed = bytes.Repeat([]byte{255, 0, 0}, 16)
)

type stubQuantizer struct {
	colors  []colour.Color
	calls   int
	lastBuf []byte
	lastFmt colour.PixelFormat
	quality int
}

func (s *stubQuantizer) Quantize(pix []byte, format colour.PixelFormat, quality, count int) ([]colour.Color, error) {
	s.calls++
	s.lastBuf = pix
	s.lastFmt = format
	s.quality = quality
	return s.colors, nil
}

func TestExtractDedupes(t *testing.T) {
	q := &stubQuantizer{colors: []colour.Color{red, red, blue}}
	p, err := NewExtractor(q).Extract(uniRed, colour.RGB, Request{Count: 3})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(p) != 2 || p[0] != red || p[1] != blue {
		t.Fatalf("got %v, want [red blue]", p)
	}
	if q.quality != QualityHint {
		t.Errorf("quality hint = %d, want %d", q.quality, QualityHint)
	}
}

func TestExtractSortsByContrast(t *testing.T) {
	q := &stubQuantizer{colors: []colour.Color{gray, colour.Black, colour.White}}
	ref := colour.White
	p, err := NewExtractor(q).Extract(uniRed, colour.RGB, Request{Count: 3, Reference: &ref})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := Palette{colour.Black, gray, colour.White}
	for i := range want {
		if p[i] != want[i] {
			t.Fatalf("got %v, want %v", p, want)
		}
	}
}

func TestExtractKeepsEmissionOrderWithoutReference(t *testing.T) {
	q := &stubQuantizer{colors: []colour.Color{gray, colour.Black, colour.White}}
	p, err := NewExtractor(q).Extract(uniRed, colour.RGB, Request{Count: 3})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if p[0] != gray || p[1] != colour.Black || p[2] != colour.White {
		t.Fatalf("got %v", p)
	}
}

func TestExtractWithoutExclusionPassesOriginalBuffer(t *testing.T) {
	pix := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	q := &stubQuantizer{colors: []colour.Color{red}}
	if _, err := NewExtractor(q).Extract(pix, colour.RGBA, Request{Count: 2}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if q.lastFmt != colour.RGBA || !bytes.Equal(q.lastBuf, pix) {
		t.Fatalf("quantizer got %s %v, want the untouched RGBA buffer", q.lastFmt, q.lastBuf)
	}
}

func TestExtractWithExclusionPassesRGB(t *testing.T) {
	pix := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	set, _ := colour.NewExclusionSet(red)
	q := &stubQuantizer{colors: []colour.Color{blue}}
	if _, err := NewExtractor(q).Extract(pix, colour.RGBA, Request{Count: 2, Excluded: set}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if q.lastFmt != colour.RGB || !bytes.Equal(q.lastBuf, []byte{0, 0, 255}) {
		t.Fatalf("quantizer got %s %v", q.lastFmt, q.lastBuf)
	}
}

func TestExtractNoDataAfterFilter(t *testing.T) {
	set, _ := colour.NewExclusionSet(red)
	q := &stubQuantizer{colors: []colour.Color{red}}
	_, err := NewExtractor(q).Extract(uniRed, colour.RGB, Request{Count: 2, Excluded: set})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if q.calls != 0 {
		t.Fatal("quantizer called on empty input")
	}
}

func TestExtractNoDataOnEmptyInput(t *testing.T) {
	q := &stubQuantizer{}
	if _, err := NewExtractor(q).Extract(nil, colour.RGB, Request{Count: 2}); !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	q := &stubQuantizer{}
	_, err := NewExtractor(q).Extract([]byte{1, 2, 3, 4}, colour.RGB, Request{Count: 2})
	if !errors.Is(err, ErrUnsupportedFormat) || !errors.Is(err, colour.ErrUnsupportedPixelFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat wrapping ErrUnsupportedPixelFormat", err)
	}

	set, _ := colour.NewExclusionSet(red)
	_, err = NewExtractor(q).Extract([]byte{1, 2, 3}, colour.PixelFormat(9), Request{Count: 2, Excluded: set})
	if !errors.Is(err, ErrUnsupportedFormat) || !errors.Is(err, colour.ErrUnsupportedPixelFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractInvalidCount(t *testing.T) {
	q := &stubQuantizer{}
	for _, n := range []int{0, 1, 11} {
		if _, err := NewExtractor(q).Extract(uniRed, colour.RGB, Request{Count: n}); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("count %d: error = %v, want ErrInvalidCount", n, err)
		}
	}
}

func TestWithThreshold(t *testing.T) {
	e := NewExtractor(&stubQuantizer{}, WithThreshold(0.075))
	if e.Threshold() != 0.075 {
		t.Fatalf("threshold = %v", e.Threshold())
	}
	if NewExtractor(&stubQuantizer{}).Threshold() != colour.DefaultThreshold {
		t.Fatal("default threshold not applied")
	}
}

func TestExtractWithMedianCut(t *testing.T) {
	pix := append(bytes.Repeat([]byte{255, 255, 255}, 600), bytes.Repeat([]byte{0, 0, 200}, 400)...)
	set, _ := colour.NewExclusionSet(colour.White)
	p, err := NewExtractor(quantize.MedianCut{}).Extract(pix, colour.RGB, Request{Count: 4, Excluded: set})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(p) != 1 || p[0] != (colour.Color{B: 200}) {
		t.Fatalf("got %v, want only the blue", p)
	}
}

func TestExtractAllTranslucentIsNoData(t *testing.T) {
	pix := bytes.Repeat([]byte{200, 10, 10, 40}, 64)
	_, err := NewExtractor(quantize.MedianCut{}).Extract(pix, colour.RGBA, Request{Count: 3})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}
