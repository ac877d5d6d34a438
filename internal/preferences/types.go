package preferences

// Storage keys shared with the web client.
const (
	ThemeKey       = "vision-theme"
	LocaleKey      = "vision-locale"
	PreferencesKey = "vision-preferences"
)

type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight || t == ThemeSystem
}

// Resolve maps system to the OS setting.
func (t Theme) Resolve(systemDark bool) Theme {
	if t != ThemeSystem {
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

type Locale string

const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"
)

func (l Locale) IsValid() bool {
	return l == LocaleJA || l == LocaleEN
}

// Preferences are user settings stored as one JSON document.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Sound         bool   `json:"sound"`
	HourlyRate    int    `json:"hourlyRate"`
	Language      Locale `json:"language"`
}

// DefaultPreferences is what a fresh install starts with; stored values are merged over it.
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: true,
		Sound:         true,
		HourlyRate:    3000,
		Language:      LocaleJA,
	}
}

const (
	DefaultTheme  = ThemeDark
	DefaultLocale = LocaleJA
)

type Settings struct {
	Theme       Theme
	Locale      Locale
	Preferences Preferences
}

// UpdateInput carries a partial update; nil fields are kept.
type UpdateInput struct {
	Theme         *Theme
	Locale        *Locale
	Notifications *bool
	Sound         *bool
	HourlyRate    *int
	Language      *Locale
}
