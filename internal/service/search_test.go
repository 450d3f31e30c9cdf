package service_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
	storage_mocks "github.com/Fauli/screenshot-organizer/internal/storage/mocks"
)

func TestSearchService_Search(t *testing.T) {
	tests := []struct {
		name      string
		params    service.SearchParams
		mockSetup func(index *storage_mocks.MockSearchIndex, prefs *storage_mocks.MockPreferenceStore)
		wantLen   int
		wantErr   bool
	}{
		{
			name:      "blank query matches nothing",
			params:    service.SearchParams{Query: "   "},
			mockSetup: func(*storage_mocks.MockSearchIndex, *storage_mocks.MockPreferenceStore) {},
		},
		{
			name:      "negative limit",
			params:    service.SearchParams{Query: "acme", Limit: -1},
			mockSetup: func(*storage_mocks.MockSearchIndex, *storage_mocks.MockPreferenceStore) {},
			wantErr:   true,
		},
		{
			name:   "preference hides solved",
			params: service.SearchParams{Query: " acme "},
			mockSetup: func(index *storage_mocks.MockSearchIndex, prefs *storage_mocks.MockPreferenceStore) {
				prefs.EXPECT().Load(gomock.Any()).Return(storage.DefaultPreferences(), nil)
				index.EXPECT().Search(gomock.Any(), "acme", false, 0).Return([]storage.Item{{ID: "a"}, {ID: "b"}}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "explicit include and capped limit",
			params: service.SearchParams{Query: "acme", IncludeSolved: boolPtr(true), Limit: 1000},
			mockSetup: func(index *storage_mocks.MockSearchIndex, _ *storage_mocks.MockPreferenceStore) {
				index.EXPECT().Search(gomock.Any(), "acme", true, service.MaxSearchLimit).Return([]storage.Item{{ID: "a"}}, nil)
			},
			wantLen: 1,
		},
		{
			name:   "index error",
			params: service.SearchParams{Query: "acme", IncludeSolved: boolPtr(false)},
			mockSetup: func(index *storage_mocks.MockSearchIndex, _ *storage_mocks.MockPreferenceStore) {
				index.EXPECT().Search(gomock.Any(), "acme", false, 0).Return(nil, errors.New("malformed MATCH"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			index := storage_mocks.NewMockSearchIndex(ctrl)
			prefs := storage_mocks.NewMockPreferenceStore(ctrl)
			tt.mockSetup(index, prefs)

			svc := service.NewSearchService(index, prefs)
			got, err := svc.Search(testContext(), tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Search() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.wantLen {
				t.Errorf("Search() returned %d items, want %d", len(got), tt.wantLen)
			}
		})
	}
}
