package http

import "vision/internal/preferences"

type updateReq struct {
	Theme         *string `json:"theme"         binding:"omitempty,oneof=dark light system"`
	Locale        *string `json:"locale"        binding:"omitempty,oneof=ja en"`
	Notifications *bool   `json:"notifications"`
	Sound         *bool   `json:"sound"`
	HourlyRate    *int    `json:"hourly_rate"   binding:"omitempty,min=0"`
	Language      *string `json:"language"      binding:"omitempty,oneof=ja en"`
}

func (r updateReq) toInput() preferences.UpdateInput {
	in := preferences.UpdateInput{
		Notifications: r.Notifications,
		Sound:         r.Sound,
		HourlyRate:    r.HourlyRate,
	}
	if r.Theme != nil {
		t := preferences.Theme(*r.Theme)
		in.Theme = &t
	}
	if r.Locale != nil {
		l := preferences.Locale(*r.Locale)
		in.Locale = &l
	}
	if r.Language != nil {
		l := preferences.Locale(*r.Language)
		in.Language = &l
	}
	return in
}

type preferencesResp struct {
	Notifications bool   `json:"notifications"`
	Sound         bool   `json:"sound"`
	HourlyRate    int    `json:"hourly_rate"`
	Language      string `json:"language"`
}

type settingsResp struct {
	Theme       string          `json:"theme"`
	Locale      string          `json:"locale"`
	Preferences preferencesResp `json:"preferences"`
}

func (h *handler) newSettingsResp(s preferences.Settings) settingsResp {
	return settingsResp{
		Theme:  string(s.Theme),
		Locale: string(s.Locale),
		Preferences: preferencesResp{
			Notifications: s.Preferences.Notifications,
			Sound:         s.Preferences.Sound,
			HourlyRate:    s.Preferences.HourlyRate,
			Language:      string(s.Preferences.Language),
		},
	}
}
