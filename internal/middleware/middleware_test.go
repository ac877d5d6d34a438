package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vision/pkg/log"

	"github.com/gin-gonic/gin"
)

func newRouter(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.CORS(), mw.RateLimit(), mw.Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORS(t *testing.T) {
	r := newRouter(New(log.NewNop(), Config{AllowedOrigins: []string{"http://localhost:3000"}}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusOK, wantAllow: "http://localhost:3000"},
		{name: "unknown origin", method: http.MethodGet, origin: "http://evil.test", wantStatus: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantAllow: "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORSWildcard(t *testing.T) {
	r := newRouter(New(log.NewNop(), Config{AllowedOrigins: []string{"*"}}))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "app://vision")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "app://vision" {
		t.Errorf("expected any origin to be echoed")
	}
}

func TestRateLimit(t *testing.T) {
	// 6 per minute gives a burst of 1.
	r := newRouter(New(log.NewNop(), Config{RequestsPerMin: 6}))

	do := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client must have its own bucket, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newRouter(New(log.NewNop(), Config{}))
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
}
