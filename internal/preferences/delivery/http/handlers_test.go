package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vision/internal/preferences"
	"vision/pkg/log"

	"github.com/gin-gonic/gin"
)

type mockUseCase struct {
	settings preferences.Settings
	last     preferences.UpdateInput
}

func (m *mockUseCase) Open(ctx context.Context) error { return nil }
func (m *mockUseCase) Close() error                   { return nil }
func (m *mockUseCase) Get(ctx context.Context) preferences.Settings {
	return m.settings
}
func (m *mockUseCase) Update(ctx context.Context, in preferences.UpdateInput) (preferences.Settings, error) {
	m.last = in
	if in.Theme != nil {
		m.settings.Theme = *in.Theme
	}
	return m.settings, nil
}
func (m *mockUseCase) Reset(ctx context.Context) (preferences.Settings, error) {
	return m.settings, nil
}

func newTestRouter(uc preferences.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))
	return r
}

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "theme", body: `{"theme":"light"}`, wantStatus: http.StatusOK},
		{name: "bad theme", body: `{"theme":"neon"}`, wantStatus: http.StatusBadRequest},
		{name: "negative rate", body: `{"hourly_rate":-5}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockUseCase{})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateHandlerPartialBody(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(`{"sound":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if uc.last.Sound == nil || *uc.last.Sound {
		t.Errorf("expected sound=false in input, got %+v", uc.last)
	}
	if uc.last.Theme != nil || uc.last.HourlyRate != nil {
		t.Errorf("absent fields must stay nil, got %+v", uc.last)
	}
}

func TestGetHandler(t *testing.T) {
	uc := &mockUseCase{settings: preferences.Settings{
		Theme:       preferences.ThemeDark,
		Locale:      preferences.LocaleJA,
		Preferences: preferences.DefaultPreferences(),
	}}
	r := newTestRouter(uc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil))

	var env struct {
		Data settingsResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Theme != "dark" || env.Data.Preferences.HourlyRate != 3000 {
		t.Errorf("unexpected body %+v", env.Data)
	}
}
