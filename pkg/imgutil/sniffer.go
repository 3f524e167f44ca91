package imgutil

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Kind identifies a supported image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindGIF
	KindBMP
	KindTIFF
	KindWebP
	KindAVIF
	KindICO
	KindPNM
	KindDDS
	KindTGA
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindBMP:
		return "bmp"
	case KindTIFF:
		return "tiff"
	case KindWebP:
		return "webp"
	case KindAVIF:
		return "avif"
	case KindICO:
		return "ico"
	case KindPNM:
		return "pnm"
	case KindDDS:
		return "dds"
	case KindTGA:
		return "tga"
	default:
		return "unknown"
	}
}

// Decodable reports whether a decoder exists for k.
func (k Kind) Decodable() bool {
	_, ok := decoders[k]
	return ok
}

const headerSize = 12

var (
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	gif87Sig  = []byte("GIF87a")
	gif89Sig  = []byte("GIF89a")
	bmpSig    = []byte("BM")
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	icoSig    = []byte{0x00, 0x00, 0x01, 0x00}
	riffSig   = []byte("RIFF")
	webpSig   = []byte("WEBP")
	ftypSig   = []byte("ftyp")
	ddsSig    = []byte("DDS ")
)

// DetectHeader inspects the first 12 bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < headerSize {
		return KindUnknown, errors.New("header too short")
	}

	switch {
	case bytes.HasPrefix(header, jpegSig):
		return KindJPEG, nil
	case bytes.HasPrefix(header, pngSig):
		return KindPNG, nil
	case bytes.HasPrefix(header, gif87Sig), bytes.HasPrefix(header, gif89Sig):
		return KindGIF, nil
	case bytes.HasPrefix(header, tiffSigLE), bytes.HasPrefix(header, tiffSigBE):
		return KindTIFF, nil
	case bytes.HasPrefix(header, riffSig) && bytes.Equal(header[8:12], webpSig):
		return KindWebP, nil
	case bytes.Equal(header[4:8], ftypSig) && isAVIFBrand(header[8:12]):
		return KindAVIF, nil
	case bytes.HasPrefix(header, icoSig):
		return KindICO, nil
	case bytes.HasPrefix(header, ddsSig):
		return KindDDS, nil
	case isPNM(header):
		return KindPNM, nil
	case bytes.HasPrefix(header, bmpSig):
		return KindBMP, nil
	}

	return KindUnknown, nil
}

func isAVIFBrand(brand []byte) bool {
	return bytes.Equal(brand, []byte("avif")) || bytes.Equal(brand, []byte("avis"))
}

// isPNM matches the netpbm magic: P1 to P6 followed by whitespace.
func isPNM(header []byte) bool {
	if header[0] != 'P' || header[1] < '1' || header[1] > '6' {
		return false
	}
	switch header[2] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// KindFromName guesses the kind of a file without a signature from its
// extension. Only TGA needs this.
func KindFromName(name string) Kind {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return KindTGA
	}
	return KindUnknown
}

// SniffReader reads the header from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return KindUnknown, err
	}

	return DetectHeader(header)
}
