package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vision/internal/session"
	"vision/pkg/log"
	"vision/pkg/visionapi"

	"github.com/gin-gonic/gin"
)

type mockUseCase struct {
	state     session.State
	signInErr error
	loggedOut bool
}

func (m *mockUseCase) Open(ctx context.Context) error { return nil }
func (m *mockUseCase) Close() error                   { return nil }
func (m *mockUseCase) Login(ctx context.Context, token string, user session.User) error {
	return nil
}
func (m *mockUseCase) SignIn(ctx context.Context, in session.LoginInput) (session.User, error) {
	if m.signInErr != nil {
		return session.User{}, m.signInErr
	}
	u := session.User{ID: 1, Email: in.Email}
	m.state = session.State{User: &u, Authenticated: true}
	return u, nil
}
func (m *mockUseCase) SignUp(ctx context.Context, in session.SignupInput) (session.User, error) {
	return session.User{}, nil
}
func (m *mockUseCase) Logout(ctx context.Context) error {
	m.loggedOut = true
	m.state = session.State{LoginRequired: true, LoginPath: "/login"}
	return nil
}
func (m *mockUseCase) UpdateUser(ctx context.Context, u session.UserUpdate) (session.User, error) {
	if m.state.User == nil {
		return session.User{}, session.ErrNotAuthenticated
	}
	return *m.state.User, nil
}
func (m *mockUseCase) Refresh(ctx context.Context) (session.User, error) { return session.User{}, nil }
func (m *mockUseCase) Current(ctx context.Context) session.State        { return m.state }
func (m *mockUseCase) Token() string                                    { return "" }
func (m *mockUseCase) Redirect(ctx context.Context, path string)        {}
func (m *mockUseCase) Reload(ctx context.Context) (bool, error)         { return false, nil }

func newTestRouter(uc session.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSessionHandlers(t *testing.T) {
	tests := []struct {
		name       string
		uc         *mockUseCase
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "get anonymous", uc: &mockUseCase{}, method: http.MethodGet, path: "/api/v1/session", wantStatus: http.StatusOK},
		{name: "sign in", uc: &mockUseCase{}, method: http.MethodPost, path: "/api/v1/session", body: `{"email":"a@b.co","password":"pw"}`, wantStatus: http.StatusOK},
		{name: "sign in bad email", uc: &mockUseCase{}, method: http.MethodPost, path: "/api/v1/session", body: `{"email":"nope","password":"pw"}`, wantStatus: http.StatusBadRequest},
		{name: "sign in rejected", uc: &mockUseCase{signInErr: visionapi.ErrUnauthorized}, method: http.MethodPost, path: "/api/v1/session", body: `{"email":"a@b.co","password":"pw"}`, wantStatus: http.StatusUnauthorized},
		{name: "sign in remote down", uc: &mockUseCase{signInErr: &visionapi.StatusError{StatusCode: 503, Status: "503 Service Unavailable"}}, method: http.MethodPost, path: "/api/v1/session", body: `{"email":"a@b.co","password":"pw"}`, wantStatus: http.StatusBadGateway},
		{name: "update user anonymous", uc: &mockUseCase{}, method: http.MethodPatch, path: "/api/v1/session/user", body: `{"name":"Aki"}`, wantStatus: http.StatusUnauthorized},
		{name: "logout", uc: &mockUseCase{}, method: http.MethodDelete, path: "/api/v1/session", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newTestRouter(tt.uc), tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestLogoutReportsLoginPath(t *testing.T) {
	uc := &mockUseCase{}
	w := do(newTestRouter(uc), http.MethodDelete, "/api/v1/session", "")
	if !uc.loggedOut {
		t.Fatal("expected Logout to be called")
	}
	if !strings.Contains(w.Body.String(), `"login_path":"/login"`) {
		t.Errorf("expected login path in body, got %s", w.Body.String())
	}
}
