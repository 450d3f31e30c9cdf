package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Fauli/screenshot-organizer/internal/app"
	"github.com/Fauli/screenshot-organizer/internal/cli"
	"github.com/Fauli/screenshot-organizer/internal/config"
	"github.com/Fauli/screenshot-organizer/internal/ocr"
	"github.com/Fauli/screenshot-organizer/internal/ocr/tesseract"
)

// lazyEngine starts Tesseract on the first recognition so commands that
// never process images do not pay for it.
type lazyEngine struct {
	languages []string

	once   sync.Once
	engine *tesseract.Engine
	err    error
}

func (e *lazyEngine) Recognize(ctx context.Context, img []byte) (*ocr.Result, error) {
	e.once.Do(func() {
		e.engine, e.err = tesseract.New(e.languages...)
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.engine.Recognize(ctx, img)
}

func (e *lazyEngine) Close() error {
	if e.engine == nil {
		return nil
	}
	return e.engine.Close()
}

func open() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	engine := &lazyEngine{languages: strings.Split(cfg.OCRLanguage, "+")}
	return app.New(cfg, engine, app.WithCloser(engine))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := cli.New(open)
	err := c.Command().ExecuteContext(ctx)
	if cerr := c.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error:", cerr)
	}
	stop()
	if err != nil {
		os.Exit(1)
	}
}
