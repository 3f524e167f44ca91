package colour

import "fmt"

// PixelFormat describes the channel layout of a raw pixel buffer.
type PixelFormat int

const (
	RGB PixelFormat = iota
	RGBA
	ARGB
	BGR
	BGRA
)

func (f PixelFormat) String() string {
	switch f {
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	case ARGB:
		return "argb"
	case BGR:
		return "bgr"
	case BGRA:
		return "bgra"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Stride is the number of bytes per pixel, or 0 for an unknown format.
func (f PixelFormat) Stride() int {
	switch f {
	case RGB, BGR:
		return 3
	case RGBA, ARGB, BGRA:
		return 4
	default:
		return 0
	}
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f == RGBA || f == ARGB || f == BGRA
}

// Alpha returns the alpha byte of px, or 255 for formats without one.
func (f PixelFormat) Alpha(px []byte) uint8 {
	switch f {
	case RGBA, BGRA:
		return px[3]
	case ARGB:
		return px[0]
	default:
		return 255
	}
}

// Validate checks that buf holds a whole number of pixels in format f.
func (f PixelFormat) Validate(buf []byte) error {
	stride := f.Stride()
	if stride == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, f)
	}
	if len(buf)%stride != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of the %s stride %d",
			ErrUnsupportedPixelFormat, len(buf), f, stride)
	}
	return nil
}

// Decode reads a single pixel laid out in format f.
func Decode(px []byte, f PixelFormat) (Color, error) {
	stride := f.Stride()
	if stride == 0 {
		return Color{}, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, f)
	}
	if len(px) != stride {
		return Color{}, fmt.Errorf("%w: %s pixel needs %d bytes, got %d",
			ErrUnsupportedPixelFormat, f, stride, len(px))
	}

	switch f {
	case RGB, RGBA:
		return Color{R: px[0], G: px[1], B: px[2]}, nil
	case ARGB:
		return Color{R: px[1], G: px[2], B: px[3]}, nil
	case BGR, BGRA:
		return Color{R: px[2], G: px[1], B: px[0]}, nil
	}
	return Color{}, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, f)
}
