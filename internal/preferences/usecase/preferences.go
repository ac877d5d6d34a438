package usecase

import (
	"context"
	"errors"

	"vision/internal/preferences"
)

// Open loads stored settings. Unknown or unreadable values fall back to the defaults.
func (uc *implUseCase) Open(ctx context.Context) error {
	s := defaults()

	if e, ok, err := uc.store.Get(ctx, preferences.ThemeKey); err != nil {
		return err
	} else if ok {
		if t := preferences.Theme(e.Value); t.IsValid() {
			s.Theme = t
		} else {
			uc.l.Warnf(ctx, "preferences.Open: ignoring stored theme %q", e.Value)
		}
	}

	if e, ok, err := uc.store.Get(ctx, preferences.LocaleKey); err != nil {
		return err
	} else if ok {
		if l := preferences.Locale(e.Value); l.IsValid() {
			s.Locale = l
		} else {
			uc.l.Warnf(ctx, "preferences.Open: ignoring stored locale %q", e.Value)
		}
	}

	// Decoding into the defaults keeps every key the stored document lacks.
	prefs := preferences.DefaultPreferences()
	if _, err := uc.store.GetJSON(ctx, preferences.PreferencesKey, &prefs); err != nil {
		uc.l.Warnf(ctx, "preferences.Open: %v", err)
		prefs = preferences.DefaultPreferences()
	}
	if !prefs.Language.IsValid() {
		prefs.Language = preferences.DefaultPreferences().Language
	}
	s.Preferences = prefs

	uc.mu.Lock()
	uc.settings = s
	uc.mu.Unlock()
	return nil
}

func (uc *implUseCase) Close() error { return nil }

func (uc *implUseCase) Get(ctx context.Context) preferences.Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings
}

func (uc *implUseCase) Update(ctx context.Context, input preferences.UpdateInput) (preferences.Settings, error) {
	if err := validate(input); err != nil {
		return preferences.Settings{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.settings
	if input.Theme != nil && *input.Theme != s.Theme {
		if _, err := uc.store.Set(ctx, preferences.ThemeKey, string(*input.Theme)); err != nil {
			return preferences.Settings{}, err
		}
		s.Theme = *input.Theme
	}
	if input.Locale != nil && *input.Locale != s.Locale {
		if _, err := uc.store.Set(ctx, preferences.LocaleKey, string(*input.Locale)); err != nil {
			return preferences.Settings{}, err
		}
		s.Locale = *input.Locale
	}

	p := s.Preferences
	if input.Notifications != nil {
		p.Notifications = *input.Notifications
	}
	if input.Sound != nil {
		p.Sound = *input.Sound
	}
	if input.HourlyRate != nil {
		p.HourlyRate = *input.HourlyRate
	}
	if input.Language != nil {
		p.Language = *input.Language
	}
	if p != s.Preferences {
		if err := uc.store.SetJSON(ctx, preferences.PreferencesKey, p); err != nil {
			return preferences.Settings{}, err
		}
		s.Preferences = p
	}

	uc.settings = s
	return s, nil
}

func (uc *implUseCase) Reset(ctx context.Context) (preferences.Settings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	err := errors.Join(
		uc.store.Delete(ctx, preferences.ThemeKey),
		uc.store.Delete(ctx, preferences.LocaleKey),
		uc.store.Delete(ctx, preferences.PreferencesKey),
	)
	if err != nil {
		return preferences.Settings{}, err
	}
	uc.settings = defaults()
	return uc.settings, nil
}

func validate(in preferences.UpdateInput) error {
	if in.Theme != nil && !in.Theme.IsValid() {
		return preferences.ErrInvalidTheme
	}
	if in.Locale != nil && !in.Locale.IsValid() {
		return preferences.ErrInvalidLocale
	}
	if in.Language != nil && !in.Language.IsValid() {
		return preferences.ErrInvalidLocale
	}
	if in.HourlyRate != nil && *in.HourlyRate < 0 {
		return preferences.ErrInvalidHourlyRate
	}
	return nil
}
