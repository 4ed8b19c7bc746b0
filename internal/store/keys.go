package store

import (
	"github.com/2beens/athletepro/internal/userdata"
)

type Key string

const (
	KeyUser     Key = "user"
	KeySettings Key = "settings"

	DefaultPrefix = "athletePro_"
)

func SeriesKey(name userdata.SeriesName) Key {
	return Key(name)
}

// defaults is the single source of default values, keyed by store key.
// Each entry builds a fresh value so callers never share state.
var defaults = map[Key]func() any{
	KeyUser:     func() any { return userdata.DefaultUserProfile() },
	KeySettings: func() any { return userdata.DefaultSettings() },
}

func init() {
	for _, name := range userdata.AllSeries() {
		defaults[SeriesKey(name)] = func() any { return []userdata.Record{} }
	}
}

// KnownKeys lists every key with a default: user, settings, then each series.
func KnownKeys() []Key {
	keys := []Key{KeyUser, KeySettings}
	for _, name := range userdata.AllSeries() {
		keys = append(keys, SeriesKey(name))
	}
	return keys
}

// Default returns a fresh copy of the default for key, nil for unknown keys.
func Default(key Key) any {
	newDefault, ok := defaults[key]
	if !ok {
		return nil
	}
	return newDefault()
}

func defaultFor[T any](key Key) T {
	var zero T
	def, ok := Default(key).(T)
	if !ok {
		return zero
	}
	return def
}
