package test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"activityapp/internal/core/port"
)

// PNG returns a tiny valid PNG image.
func PNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})

	var buf bytes.Buffer

	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}

	return buf.Bytes()
}

func PNGUpload(t *testing.T) port.Upload {
	data := PNG(t)

	return port.Upload{Filename: "image.png", Size: int64(len(data)), Content: bytes.NewReader(data)}
}

func TextUpload() port.Upload {
	data := []byte("not an image")

	return port.Upload{Filename: "image.png", Size: int64(len(data)), Content: bytes.NewReader(data)}
}
