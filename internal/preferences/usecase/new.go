package usecase

import (
	"sync"

	"vision/internal/kv"
	"vision/internal/preferences"
	pkgLog "vision/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	store kv.Store

	mu       sync.RWMutex
	settings preferences.Settings
}

// New creates the preferences service with defaults loaded; call Open to read stored values.
func New(l pkgLog.Logger, store kv.Store) preferences.UseCase {
	return &implUseCase{
		l:        l,
		store:    store,
		settings: defaults(),
	}
}

func defaults() preferences.Settings {
	return preferences.Settings{
		Theme:       preferences.DefaultTheme,
		Locale:      preferences.DefaultLocale,
		Preferences: preferences.DefaultPreferences(),
	}
}
