package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestEncodePNG_Lossless(t *testing.T) {
	img := gradient(16, 8)
	img.SetRGBA(3, 3, color.RGBA{10, 20, 30, 40})

	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	r, g, b, a := decoded.At(3, 3).RGBA()
	wr, wg, wb, wa := img.At(3, 3).RGBA()
	assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{r, g, b, a})
}

func TestConvertPngToJpeg(t *testing.T) {
	w := 32
	h := 32

	var pngBuf bytes.Buffer
	err := png.Encode(&pngBuf, gradient(w, h))
	if err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}

	jpegBytes, err := ConvertPngToJpeg(pngBuf.Bytes(), 90)
	if err != nil {
		t.Errorf("ConvertPngToJpeg() error = %v", err)
	}

	out, err := jpeg.Decode(bytes.NewReader(jpegBytes))
	if err != nil {
		t.Errorf("Output is not valid JPEG: %v", err)
	}

	if out.Bounds().Dx() != w || out.Bounds().Dy() != h {
		t.Errorf("Output is not %dx%d: %v", w, h, out.Bounds())
	}
}

func TestConvertPngToJpeg_InvalidInput(t *testing.T) {
	_, err := ConvertPngToJpeg([]byte("not a png"), 90)
	assert.Error(t, err)
}
