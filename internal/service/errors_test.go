package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Fauli/screenshot-organizer/internal/storage"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "ai mode",
			err:  &ValidationError{Field: "ai_mode", Message: "must be OCR_ONLY or CLOUD"},
			want: "validation error on field ai_mode: must be OCR_ONLY or CLOUD",
		},
		{
			name: "folder",
			err:  &ValidationError{Field: "selected_folder", Message: "must be an absolute path"},
			want: "validation error on field selected_folder: must be an absolute path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_MatchesInvalidInput(t *testing.T) {
	err := WrapError(&ValidationError{Field: "limit", Message: "cannot be negative"}, "failed to list")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("wrapped ValidationError should match ErrInvalidInput")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "limit" {
		t.Errorf("errors.As() = %v", vErr)
	}
}

func TestWrapError(t *testing.T) {
	if got := WrapError(nil, "failed to load preferences"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}

	base := errors.New("database is locked")
	got := WrapError(base, "failed to load preferences")
	if got.Error() != "failed to load preferences: database is locked" {
		t.Errorf("WrapError() = %q", got.Error())
	}
	if !errors.Is(got, base) {
		t.Error("WrapError() should wrap the original error")
	}
}

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantNotFound bool
	}{
		{name: "missing item", err: fmt.Errorf("get: %w", storage.ErrNotFound), wantNotFound: true},
		{name: "other failure", err: errors.New("disk I/O error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreError(tt.err, "failed to get item")
			if errors.Is(got, ErrNotFound) != tt.wantNotFound {
				t.Errorf("mapStoreError() = %v, ErrNotFound match = %v", got, !tt.wantNotFound)
			}
			if !tt.wantNotFound && !errors.Is(got, tt.err) {
				t.Errorf("mapStoreError() should keep the cause: %v", got)
			}
		})
	}
}
