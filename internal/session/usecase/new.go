package usecase

import (
	"sync"
	"time"

	"vision/internal/kv"
	"vision/internal/session"
	pkgLog "vision/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	store kv.Store
	now   func() time.Time

	mu            sync.RWMutex
	api           session.AuthAPI
	token         string
	user          *session.User
	expiresAt     time.Time
	loginRequired bool
	loginPath     string
	listeners     []session.Listener
}

// New creates the session service. The auth API is attached later with UseAPI
// because the API client itself needs the session as its token source.
func New(l pkgLog.Logger, store kv.Store, listeners ...session.Listener) *implUseCase {
	return &implUseCase{
		l:         l,
		store:     store,
		now:       time.Now,
		loginPath: session.DefaultLoginPath,
		listeners: listeners,
	}
}

// UseAPI attaches the auth API.
func (uc *implUseCase) UseAPI(api session.AuthAPI) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.api = api
}

// AddListener registers a listener for sign-in and sign-out.
func (uc *implUseCase) AddListener(li session.Listener) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, li)
}

var _ session.UseCase = (*implUseCase)(nil)
