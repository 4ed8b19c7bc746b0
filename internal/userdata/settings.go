package userdata

import "strings"

type Theme string

const (
	ThemeDark     Theme = "dark"
	ThemeLight    Theme = "light"
	ThemeContrast Theme = "contrast"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeContrast:
		return true
	default:
		return false
	}
}

type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

func (u Units) IsValid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

func ParseTheme(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

func ParseUnits(s string) (Units, bool) {
	u := Units(strings.ToLower(strings.TrimSpace(s)))
	return u, u.IsValid()
}

type Settings struct {
	Theme                Theme `json:"theme"`
	Units                Units `json:"units"`
	NotificationsEnabled bool  `json:"notifications"`
	AutoSave             bool  `json:"autoSave"`
	OfflineMode          bool  `json:"offlineMode"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:                ThemeDark,
		Units:                UnitsMetric,
		NotificationsEnabled: true,
		AutoSave:             true,
		OfflineMode:          true,
	}
}
