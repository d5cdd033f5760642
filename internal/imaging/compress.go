// Package imaging shrinks uploaded images before they reach the object store.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// PassthroughBelow is the size under which uploads are stored untouched.
	PassthroughBelow = 500 << 10
	// MaxDimension bounds the longest side of a compressed image.
	MaxDimension = 1200
	// JPEGQuality is used when re-encoding.
	JPEGQuality = 80
	// MaxPixels bounds width x height of images that get decoded.
	MaxPixels = 40_000_000
)

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Image is an upload ready to store.
type Image struct {
	Data        []byte
	ContentType string
	// Ext is the file extension without the leading dot.
	Ext string
}

// Compress sniffs data, rejects non-images, and re-encodes images of
// PassthroughBelow bytes or more as JPEG no larger than MaxDimension on the
// longest side.
func Compress(data []byte) (*Image, error) {
	mt := mimetype.Detect(data)
	if !allowed[mt.String()] {
		return nil, apperr.Invalid("file", fmt.Sprintf("unsupported file type %s", mt.String()))
	}

	if len(data) < PassthroughBelow {
		return &Image{Data: data, ContentType: mt.String(), Ext: extension(mt)}, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Invalid("file", "image could not be decoded")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, apperr.Invalid("file", "image dimensions too large")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Invalid("file", "image could not be decoded")
	}

	dst := scale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return &Image{Data: buf.Bytes(), ContentType: "image/jpeg", Ext: "jpg"}, nil
}

// scale fits src inside MaxDimension x MaxDimension, keeping the aspect
// ratio, over a white background so transparent areas do not turn black.
func scale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxDimension || h > MaxDimension {
		if w >= h {
			h = h * MaxDimension / w
			w = MaxDimension
		} else {
			w = w * MaxDimension / h
			h = MaxDimension
		}
	}
	w, h = max(w, 1), max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func extension(mt *mimetype.MIME) string {
	ext := mt.Extension()
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
