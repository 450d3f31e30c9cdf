//go:build tesseract

package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
)

// Requires libtesseract with English data: go test -tags tesseract ./internal/ocr/tesseract
func TestEngine_RecognizeBlankImage(t *testing.T) {
	engine, err := New("eng")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = engine.Close()
	}()

	img := image.NewGray(image.Rect(0, 0, 200, 80))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	res, err := engine.Recognize(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res == nil {
		t.Fatal("Recognize() returned nil result")
	}
}
