package imgutil

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"

	ico "github.com/biessek/golang-ico"
	"github.com/ftrvxmtrx/tga"
	"github.com/gen2brain/avif"
	pnm "github.com/jbuchbinder/gopnm"
	"github.com/lukegb/dds"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"copycolors/internal/colour"
)

// decoders is keyed by sniffed kind. image.Decode is not used: the tga
// package registers an empty magic string that matches every input.
var decoders = map[Kind]func(io.Reader) (image.Image, error){
	KindJPEG: jpeg.Decode,
	KindPNG:  png.Decode,
	KindGIF:  gif.Decode,
	KindBMP:  bmp.Decode,
	KindTIFF: tiff.Decode,
	KindWebP: webp.Decode,
	KindAVIF: avif.Decode,
	KindICO:  ico.Decode,
	KindPNM:  pnm.Decode,
	KindDDS:  dds.Decode,
	KindTGA:  tga.Decode,
}

var (
	ErrNotFound    = errors.New("file not found")
	ErrUnsupported = errors.New("unsupported or corrupt image")
)

// Image is a decoded image flattened into a raw pixel buffer.
type Image struct {
	Pix    []byte
	Format colour.PixelFormat
	Width  int
	Height int
}

// Decode opens path, checks its signature and decodes it. A file with no
// known signature is decoded as TGA when its name ends in .tga. Opaque images
// come back as packed RGB, anything with transparency as straight RGBA.
func Decode(path string) (*Image, error) {
	f, err := os.Open(path) // #nosec G304 - user-selected image path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	kind, err := SniffReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, path, err)
	}
	if kind == KindUnknown {
		kind = KindFromName(path)
	}
	if !kind.Decodable() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupported, path, kind)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, err := decoders[kind](f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, path, err)
	}
	return FromImage(img), nil
}

type opaquer interface {
	Opaque() bool
}

// FromImage flattens img into a raw buffer.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	out := &Image{Width: b.Dx(), Height: b.Dy(), Format: colour.RGBA}
	if b.Empty() {
		return out
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	if o, ok := img.(opaquer); ok && o.Opaque() {
		pix := make([]byte, 0, b.Dx()*b.Dy()*3)
		for i := 0; i < len(nrgba.Pix); i += 4 {
			pix = append(pix, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
		}
		out.Pix = pix
		out.Format = colour.RGB
		return out
	}

	out.Pix = nrgba.Pix
	return out
}
