package userdata

import "strings"

// Level can be one of:
//   - beginner
//   - intermediate
//   - advanced
//   - elite
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelElite        Level = "elite"
)

func (l Level) String() string {
	return string(l)
}

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner,
		LevelIntermediate,
		LevelAdvanced,
		LevelElite:
		return true
	default:
		return false
	}
}

func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.IsValid()
}

type UserProfile struct {
	Name               string  `json:"name"`
	Bodyweight         float64 `json:"bodyweight"`
	Height             float64 `json:"height"`
	Age                int     `json:"age"`
	TrainingExperience int     `json:"trainingExperience"`
	Level              Level   `json:"level"`
}

// DefaultUserProfile is the profile a fresh install starts with.
func DefaultUserProfile() UserProfile {
	return UserProfile{
		Name:               "Atleta Pro",
		Bodyweight:         92,
		Height:             180,
		Age:                28,
		TrainingExperience: 10,
		Level:              LevelElite,
	}
}
