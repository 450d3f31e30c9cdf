// Package ocr recognizes text in screenshot images.
package ocr

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks github.com/Fauli/screenshot-organizer/internal/ocr Engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
)

const (
	// MinHeight is the height below which images are upscaled before recognition.
	MinHeight = 900
	// TargetHeight is the height small images are upscaled to.
	TargetHeight = 1300
)

// Line is one recognized line of text.
type Line struct {
	Text string
	Box  *image.Rectangle
}

// Block is a recognized region of text made of lines.
type Block struct {
	Text  string
	Box   *image.Rectangle
	Lines []Line
}

// Result is the recognized text of an image.
type Result struct {
	FullText string
	Blocks   []Block
}

// Engine recognizes text in an encoded image.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (*Result, error)
}

// Service prepares images and runs them through an Engine.
type Service struct {
	engine     Engine
	preprocess bool
}

// NewService creates a Service that preprocesses images before recognition.
func NewService(engine Engine) *Service {
	return &Service{engine: engine, preprocess: true}
}

// Recognize returns the text found in imageBytes, or nil when the image
// cannot be decoded, recognition fails or no text is found.
func (s *Service) Recognize(ctx context.Context, imageBytes []byte) *Result {
	logger := contextutil.LoggerFromContext(ctx)

	input := imageBytes
	if s.preprocess {
		prepared, err := Preprocess(imageBytes)
		if err != nil {
			logger.WarnContext(ctx, "failed to preprocess image for ocr", "error", err)
			return nil
		}
		input = prepared
	}

	result, err := s.engine.Recognize(ctx, input)
	if err != nil {
		logger.WarnContext(ctx, "ocr recognition failed", "error", err)
		return nil
	}
	if result == nil || strings.TrimSpace(result.FullText) == "" {
		return nil
	}
	return result
}

// Preprocess decodes an image honouring EXIF orientation, converts it to a
// sharpened high-contrast grayscale, upscales short images and encodes PNG.
func Preprocess(imageBytes []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < MinHeight {
		gray = imaging.Resize(gray, 0, TargetHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
