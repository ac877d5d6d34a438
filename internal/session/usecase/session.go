package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"vision/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

// Open restores the stored session. A token without a readable user, or a JWT
// whose exp has passed, is dropped.
func (uc *implUseCase) Open(ctx context.Context) error {
	tokEntry, hasToken, err := uc.store.Get(ctx, session.TokenKey)
	if err != nil {
		return err
	}
	var user session.User
	hasUser, err := uc.store.GetJSON(ctx, session.UserKey, &user)
	if err != nil {
		uc.l.Warnf(ctx, "session.Open: stored user is unreadable, clearing: %v", err)
		return uc.clear(ctx)
	}
	if !hasToken || !hasUser || tokEntry.Value == "" {
		uc.mu.Lock()
		uc.loginRequired = true
		uc.mu.Unlock()
		return nil
	}

	exp := tokenExpiry(tokEntry.Value)
	if !exp.IsZero() && !exp.After(uc.now()) {
		uc.l.Infof(ctx, "session.Open: stored token expired at %s, clearing", exp.Format(time.RFC3339))
		return uc.clear(ctx)
	}

	uc.mu.Lock()
	uc.token = tokEntry.Value
	uc.user = &user
	uc.expiresAt = exp
	uc.loginRequired = false
	uc.mu.Unlock()
	return nil
}

func (uc *implUseCase) Reload(ctx context.Context) (bool, error) {
	if uc.Token() != "" {
		return false, nil
	}
	tokEntry, hasToken, err := uc.store.Get(ctx, session.TokenKey)
	if err != nil || !hasToken || tokEntry.Value == "" {
		return false, err
	}
	var user session.User
	hasUser, err := uc.store.GetJSON(ctx, session.UserKey, &user)
	if err != nil || !hasUser {
		return false, err
	}
	exp := tokenExpiry(tokEntry.Value)
	if !exp.IsZero() && !exp.After(uc.now()) {
		return false, nil
	}

	uc.mu.Lock()
	if uc.token != "" {
		uc.mu.Unlock()
		return false, nil
	}
	uc.token = tokEntry.Value
	uc.user = &user
	uc.expiresAt = exp
	uc.loginRequired = false
	api := uc.api
	uc.mu.Unlock()

	uc.l.Infof(ctx, "session.Reload: picked up stored session for %s", user.Email)
	if api != nil {
		api.ResetAuth()
	}
	uc.notify(ctx)
	return true, nil
}

// Close forgets the in-memory session; stored values stay.
func (uc *implUseCase) Close() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.token = ""
	uc.user = nil
	return nil
}

func (uc *implUseCase) Login(ctx context.Context, token string, user session.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.ErrMissingToken
	}
	if _, err := uc.store.Set(ctx, session.TokenKey, token); err != nil {
		return err
	}
	if err := uc.store.SetJSON(ctx, session.UserKey, user); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.token = token
	uc.user = &user
	uc.expiresAt = tokenExpiry(token)
	uc.loginRequired = false
	api := uc.api
	uc.mu.Unlock()

	if api != nil {
		api.ResetAuth()
	}
	uc.notify(ctx)
	return nil
}

func (uc *implUseCase) SignIn(ctx context.Context, input session.LoginInput) (session.User, error) {
	if input.Email == "" || input.Password == "" {
		return session.User{}, session.ErrMissingCreds
	}
	api, err := uc.authAPI()
	if err != nil {
		return session.User{}, err
	}
	resp, err := api.Login(ctx, toLoginRequest(input))
	if err != nil {
		uc.l.Warnf(ctx, "session.SignIn: %v", err)
		return session.User{}, err
	}
	user := fromAPIUser(resp.User)
	if err := uc.Login(ctx, resp.AccessToken, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

func (uc *implUseCase) SignUp(ctx context.Context, input session.SignupInput) (session.User, error) {
	if input.Email == "" || input.Password == "" {
		return session.User{}, session.ErrMissingCreds
	}
	api, err := uc.authAPI()
	if err != nil {
		return session.User{}, err
	}
	resp, err := api.Signup(ctx, toSignupRequest(input))
	if err != nil {
		uc.l.Warnf(ctx, "session.SignUp: %v", err)
		return session.User{}, err
	}
	user := fromAPIUser(resp.User)
	if err := uc.Login(ctx, resp.AccessToken, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

func (uc *implUseCase) Logout(ctx context.Context) error {
	if err := uc.clear(ctx); err != nil {
		return err
	}
	uc.notify(ctx)
	return nil
}

func (uc *implUseCase) UpdateUser(ctx context.Context, update session.UserUpdate) (session.User, error) {
	uc.mu.Lock()
	if uc.user == nil {
		uc.mu.Unlock()
		return session.User{}, session.ErrNotAuthenticated
	}
	user := *uc.user
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	uc.user = &user
	uc.mu.Unlock()

	if err := uc.store.SetJSON(ctx, session.UserKey, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

func (uc *implUseCase) Refresh(ctx context.Context) (session.User, error) {
	if uc.Token() == "" {
		return session.User{}, session.ErrNotAuthenticated
	}
	api, err := uc.authAPI()
	if err != nil {
		return session.User{}, err
	}
	me, err := api.Me(ctx)
	if err != nil {
		return session.User{}, err
	}
	user := fromAPIUser(me)

	uc.mu.Lock()
	uc.user = &user
	uc.mu.Unlock()
	if err := uc.store.SetJSON(ctx, session.UserKey, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

func (uc *implUseCase) Current(ctx context.Context) session.State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	st := session.State{
		Authenticated: uc.token != "",
		LoginRequired: uc.loginRequired,
		LoginPath:     uc.loginPath,
		ExpiresAt:     uc.expiresAt,
	}
	if uc.user != nil {
		u := *uc.user
		st.User = &u
	}
	return st
}

// Token implements visionapi.TokenSource.
func (uc *implUseCase) Token() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.token
}

// Redirect implements visionapi.Redirector. The rejected token is dropped and
// the session is marked as needing a new login at path.
func (uc *implUseCase) Redirect(ctx context.Context, path string) {
	uc.mu.Lock()
	uc.token = ""
	uc.expiresAt = time.Time{}
	uc.loginRequired = true
	if path != "" {
		uc.loginPath = path
	}
	uc.mu.Unlock()

	uc.l.Warnf(ctx, "session: remote rejected credentials, login required at %s", path)
	if err := uc.store.Delete(ctx, session.TokenKey); err != nil {
		uc.l.Errorf(ctx, "session.Redirect: %v", err)
	}
	uc.notify(ctx)
}

func (uc *implUseCase) clear(ctx context.Context) error {
	uc.mu.Lock()
	uc.token = ""
	uc.user = nil
	uc.expiresAt = time.Time{}
	uc.loginRequired = true
	uc.mu.Unlock()

	return errors.Join(
		uc.store.Delete(ctx, session.TokenKey),
		uc.store.Delete(ctx, session.UserKey),
	)
}

func (uc *implUseCase) authAPI() (session.AuthAPI, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.api == nil {
		return nil, session.ErrNoAuthAPI
	}
	return uc.api, nil
}

func (uc *implUseCase) notify(ctx context.Context) {
	st := uc.Current(ctx)
	uc.mu.RLock()
	listeners := append([]session.Listener(nil), uc.listeners...)
	uc.mu.RUnlock()
	for _, li := range listeners {
		li.SessionChanged(ctx, st)
	}
}

// tokenExpiry reads exp without verifying the signature; the signing key lives on
// the server. Opaque tokens and tokens without exp yield the zero time.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
