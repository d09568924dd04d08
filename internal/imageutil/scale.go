// Package imageutil post-processes captured screenshots.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// Dimensions returns the pixel size of a PNG without decoding pixel data.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode png header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// ScalePNG resizes a PNG by factor (0 < factor <= 1) and re-encodes it.
// A factor of 1 returns data unchanged.
func ScalePNG(data []byte, factor float64) ([]byte, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("scale must be in (0, 1], got %g", factor)
	}
	if factor == 1 {
		return data, nil
	}

	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
