package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrTooLarge     = errors.New("file too large")
	ErrInvalidImage = errors.New("invalid image")
	ErrUnsupported  = errors.New("unsupported image type")
)

const (
	// BadgeMaxBytes bounds accepted uploads.
	BadgeMaxBytes = 1 * 1024 * 1024
	// BadgeDim is the stored badge edge length; badges are square.
	BadgeDim = 128
)

// Detect allowed types by magic number.
func detectMagic(header []byte) (string, error) {
	if len(header) < 12 {
		return "", ErrInvalidImage
	}
	// JPEG: FF D8 FF
	if header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF {
		return "image/jpeg", nil
	}
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47 &&
		header[4] == 0x0D && header[5] == 0x0A && header[6] == 0x1A && header[7] == 0x0A {
		return "image/png", nil
	}
	// WebP: RIFF....WEBP
	if header[0] == 'R' && header[1] == 'I' && header[2] == 'F' && header[3] == 'F' &&
		header[8] == 'W' && header[9] == 'E' && header[10] == 'B' && header[11] == 'P' {
		return "image/webp", nil
	}
	return "", ErrUnsupported
}

// NormalizeBadge validates an uploaded badge image, decodes it, scales
// it to the square badge size, and re-encodes as PNG so transparency
// survives.
func NormalizeBadge(data []byte) ([]byte, error) {
	if int64(len(data)) > BadgeMaxBytes {
		return nil, ErrTooLarge
	}
	if len(data) < 12 {
		return nil, ErrInvalidImage
	}

	srcType, err := detectMagic(data[:12])
	if err != nil {
		return nil, err
	}

	var img image.Image
	switch srcType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/webp":
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, ErrUnsupported
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, BadgeDim, BadgeDim))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out.Bytes(), nil
}
