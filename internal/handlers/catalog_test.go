package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/handlers/mocks"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

func TestSearchHandler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		mockSetup  func(m *mocks.MockSearchService)
		wantStatus int
		wantCount  int
	}{
		{
			name:   "matches",
			target: "/api/search?q=acme+skates&include_solved=true&limit=5",
			mockSetup: func(m *mocks.MockSearchService) {
				m.EXPECT().Search(gomock.Any(), service.SearchParams{Query: "acme skates", IncludeSolved: boolPtr(true), Limit: 5}).
					Return([]storage.Item{{ID: "a"}, {ID: "b"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:   "blank query",
			target: "/api/search",
			mockSetup: func(m *mocks.MockSearchService) {
				m.EXPECT().Search(gomock.Any(), service.SearchParams{}).Return([]storage.Item{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad limit",
			target:     "/api/search?q=x&limit=lots",
			mockSetup:  func(*mocks.MockSearchService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "index failure",
			target: "/api/search?q=x",
			mockSetup: func(m *mocks.MockSearchService) {
				m.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("fts error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockSearchService(ctrl)
			tt.mockSetup(m)

			w := httptest.NewRecorder()
			NewSearchHandler(m).ServeHTTP(w, newRequest(http.MethodGet, tt.target, ""))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			if w.Code == http.StatusOK {
				if got := decodeBody[ItemListResponse](t, w); got.Count != tt.wantCount {
					t.Errorf("count = %d, want %d", got.Count, tt.wantCount)
				}
			}
		})
	}
}

func TestInsightsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockInsightsService(ctrl)
	m.EXPECT().Get(gomock.Any(), (*bool)(nil)).Return(service.Insights{
		Totals:  storage.Totals{Total: 4, Done: 3, New: 1, Pending: 1},
		Domains: []storage.Count{{Label: "github.com", Count: 2}},
	}, nil)

	w := httptest.NewRecorder()
	NewInsightsHandler(m).ServeHTTP(w, newRequest(http.MethodGet, "/api/insights", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v", w.Code)
	}
	got := decodeBody[InsightsResponse](t, w)
	if got.Totals.Total != 4 || len(got.Domains) != 1 {
		t.Errorf("insights = %+v", got)
	}
	if got.Topics == nil || got.Periods == nil {
		t.Error("empty aggregates should encode as arrays")
	}
}

func TestInsightsHandler_BadFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockInsightsService(ctrl)

	w := httptest.NewRecorder()
	NewInsightsHandler(m).ServeHTTP(w, newRequest(http.MethodGet, "/api/insights?include_solved=2", ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Code)
	}
}
