package ocr_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/ocr"
	"github.com/Fauli/screenshot-organizer/internal/ocr/mocks"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantHeight int
	}{
		{name: "short image is upscaled", w: 100, h: 50, wantHeight: ocr.TargetHeight},
		{name: "tall image keeps size", w: 40, h: 1000, wantHeight: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ocr.Preprocess(testPNG(t, tt.w, tt.h))
			if err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}
			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("DecodeConfig() error = %v", err)
			}
			if format != "png" {
				t.Errorf("format = %s, want png", format)
			}
			if cfg.Height != tt.wantHeight {
				t.Errorf("height = %d, want %d", cfg.Height, tt.wantHeight)
			}
		})
	}

	if _, err := ocr.Preprocess([]byte("not an image")); err == nil {
		t.Error("Preprocess() expected error for invalid image")
	}
}

func TestService_Recognize(t *testing.T) {
	box := image.Rect(0, 0, 10, 10)
	found := &ocr.Result{
		FullText: "Hello world",
		Blocks:   []ocr.Block{{Text: "Hello world", Box: &box, Lines: []ocr.Line{{Text: "Hello world", Box: &box}}}},
	}

	tests := []struct {
		name   string
		input  []byte
		setup  func(*mocks.MockEngine)
		wantOK bool
	}{
		{
			name:  "text found",
			input: testPNG(t, 20, 20),
			setup: func(m *mocks.MockEngine) {
				m.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(found, nil)
			},
			wantOK: true,
		},
		{
			name:  "blank text is absent",
			input: testPNG(t, 20, 20),
			setup: func(m *mocks.MockEngine) {
				m.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(&ocr.Result{FullText: "  \n"}, nil)
			},
		},
		{
			name:  "engine failure is absent",
			input: testPNG(t, 20, 20),
			setup: func(m *mocks.MockEngine) {
				m.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(nil, errors.New("engine crashed"))
			},
		},
		{
			name:  "undecodable image never reaches engine",
			input: []byte("garbage"),
			setup: func(m *mocks.MockEngine) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := mocks.NewMockEngine(ctrl)
			tt.setup(engine)

			got := ocr.NewService(engine).Recognize(context.Background(), tt.input)
			if (got != nil) != tt.wantOK {
				t.Fatalf("Recognize() = %v, want present %v", got, tt.wantOK)
			}
			if got != nil && got.FullText != "Hello world" {
				t.Errorf("FullText = %q", got.FullText)
			}
		})
	}
}
