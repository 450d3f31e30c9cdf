package service_test

import (
	"context"
	"io"
	"log/slog"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testContext() context.Context {
	return context.Background()
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }
