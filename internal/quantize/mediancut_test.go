package quantize

import (
	"bytes"
	"errors"
	"testing"

	"copycolors/internal/colour"
)

func fill(c colour.Color, n int) []byte {
	return bytes.Repeat([]byte{c.R, c.G, c.B}, n)
}

func TestQuantizeUniform(t *testing.T) {
	c := colour.Color{R: 37, G: 150, B: 190}
	got, err := MedianCut{}.Quantize(fill(c, 100), colour.RGB, 1, 5)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 1 || got[0] != c {
		t.Fatalf("got %v, want [%v]", got, c)
	}
}

func TestQuantizeTwoColoursByPopulation(t *testing.T) {
	red := colour.Color{R: 200, G: 10, B: 10}
	blue := colour.Color{R: 10, G: 10, B: 200}
	pix := append(fill(blue, 30), fill(red, 70)...)

	got, err := MedianCut{}.Quantize(pix, colour.RGB, 1, 2)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 2 || got[0] != red || got[1] != blue {
		t.Fatalf("got %v, want [%v %v]", got, red, blue)
	}
}

func TestQuantizeRespectsCount(t *testing.T) {
	var pix []byte
	for i := 0; i < 256; i += 8 {
		pix = append(pix, fill(colour.Color{R: uint8(i), G: uint8(255 - i), B: uint8(i / 2)}, 4)...)
	}
	for count := 2; count <= 10; count++ {
		got, err := MedianCut{}.Quantize(pix, colour.RGB, 1, count)
		if err != nil {
			t.Fatalf("Quantize(count=%d): %v", count, err)
		}
		if len(got) < 2 || len(got) > count {
			t.Errorf("count=%d: got %d colours", count, len(got))
		}
		seen := map[colour.Color]bool{}
		for _, c := range got {
			if seen[c] {
				t.Errorf("count=%d: %v repeated", count, c)
			}
			seen[c] = true
		}
	}
}

func TestQuantizeSkipsTranslucent(t *testing.T) {
	pix := []byte{
		255, 0, 0, 0, // transparent red
		0, 255, 0, 255,
		255, 0, 0, 10,
		0, 255, 0, 255,
	}
	got, err := MedianCut{}.Quantize(pix, colour.RGBA, 1, 3)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 1 || got[0] != (colour.Color{G: 255}) {
		t.Fatalf("got %v, want only green", got)
	}
}

func TestQuantizeAllTransparent(t *testing.T) {
	pix := []byte{1, 2, 3, 0, 4, 5, 6, 0}
	if _, err := (MedianCut{}).Quantize(pix, colour.RGBA, 1, 3); !errors.Is(err, ErrNoPixels) {
		t.Fatalf("error = %v, want ErrNoPixels", err)
	}
}

func TestQuantizeQualityStride(t *testing.T) {
	// only every 10th pixel is sampled, so the odd pixels never count
	var pix []byte
	for i := 0; i < 100; i++ {
		if i%10 == 0 {
			pix = append(pix, 0, 0, 0)
		} else {
			pix = append(pix, 255, 255, 255)
		}
	}
	got, err := MedianCut{}.Quantize(pix, colour.RGB, 10, 4)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 1 || got[0] != colour.Black {
		t.Fatalf("got %v, want [black]", got)
	}
}

func TestQuantizeBadStride(t *testing.T) {
	if _, err := (MedianCut{}).Quantize([]byte{1, 2}, colour.RGB, 1, 2); !errors.Is(err, colour.ErrUnsupportedPixelFormat) {
		t.Fatalf("error = %v", err)
	}
}

func TestQuantizeOrdersThreeColoursByPopulation(t *testing.T) {
	a := colour.Color{R: 250, G: 250, B: 250}
	b := colour.Color{R: 20, G: 120, B: 20}
	c := colour.Color{R: 5, G: 5, B: 5}
	pix := append(fill(c, 10), fill(a, 50)...)
	pix = append(pix, fill(b, 30)...)

	got, err := MedianCut{}.Quantize(pix, colour.RGB, 1, 3)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("got %v, want [%v %v %v]", got, a, b, c)
	}
}

func TestQuantizeBGRA(t *testing.T) {
	pix := []byte{
		30, 20, 10, 255,
		30, 20, 10, 255,
		30, 20, 10, 0,
	}
	got, err := MedianCut{}.Quantize(pix, colour.BGRA, 1, 2)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if len(got) != 1 || got[0] != (colour.Color{R: 10, G: 20, B: 30}) {
		t.Fatalf("got %v", got)
	}
}
