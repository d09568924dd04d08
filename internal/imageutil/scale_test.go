package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDimensions(t *testing.T) {
	w, h, err := Dimensions(makePNG(t, 40, 30))
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 30 {
		t.Errorf("got %dx%d, want 40x30", w, h)
	}
}

func TestDimensions_NotPNG(t *testing.T) {
	if _, _, err := Dimensions([]byte("not a png")); err == nil {
		t.Error("expected error for non-PNG data")
	}
}

func TestScalePNG_Half(t *testing.T) {
	out, err := ScalePNG(makePNG(t, 40, 30), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 20 || h != 15 {
		t.Errorf("got %dx%d, want 20x15", w, h)
	}
}

func TestScalePNG_NeverBelowOnePixel(t *testing.T) {
	out, err := ScalePNG(makePNG(t, 3, 3), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	w, h, _ := Dimensions(out)
	if w != 1 || h != 1 {
		t.Errorf("got %dx%d, want 1x1", w, h)
	}
}

func TestScalePNG_IdentityReturnsInput(t *testing.T) {
	in := makePNG(t, 8, 8)
	out, err := ScalePNG(in, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Error("scale 1 should return the input unchanged")
	}
}

func TestScalePNG_InvalidFactor(t *testing.T) {
	for _, f := range []float64{0, -0.5, 1.5} {
		if _, err := ScalePNG(makePNG(t, 4, 4), f); err == nil {
			t.Errorf("ScalePNG(factor=%g) should fail", f)
		}
	}
}
