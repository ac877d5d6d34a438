package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vision/internal/calendar"
	"vision/pkg/log"

	"github.com/gin-gonic/gin"
)

type mockUseCase struct {
	err  error
	last calendar.ImportInput
}

func (m *mockUseCase) Import(ctx context.Context, in calendar.ImportInput) (calendar.ImportOutput, error) {
	m.last = in
	if m.err != nil {
		return calendar.ImportOutput{}, m.err
	}
	return calendar.ImportOutput{Created: []string{"t1"}, Skipped: 1}, nil
}

func TestImportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		body       string
		wantStatus int
	}{
		{name: "default window", wantStatus: http.StatusOK},
		{name: "explicit window", body: `{"days":14,"calendar_id":"work"}`, wantStatus: http.StatusOK},
		{name: "window too large", body: `{"days":400}`, wantStatus: http.StatusBadRequest},
		{name: "not configured", err: calendar.ErrNotConfigured, wantStatus: http.StatusServiceUnavailable},
		{name: "google error", err: errors.New("403"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{err: tt.err}
			r := gin.New()
			RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/calendar/import", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.name == "explicit window" && (uc.last.Days != 14 || uc.last.CalendarID != "work") {
				t.Errorf("expected input forwarded, got %+v", uc.last)
			}
		})
	}
}
