package llm

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// MaxImageSide bounds the longest side of images sent to the model.
	MaxImageSide = 2048
	jpegQuality  = 85
)

// ErrInvalidImage is returned when the image cannot be decoded or is empty.
var ErrInvalidImage = errors.New("invalid image")

// PrepareJPEG decodes data, shrinks it to fit MaxImageSide and re-encodes it as JPEG.
func PrepareJPEG(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", ErrInvalidImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > MaxImageSide || b.Dy() > MaxImageSide {
		img = imaging.Fit(img, MaxImageSide, MaxImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
