package formula

import "strings"

type Goal string

const (
	Bulk     Goal = "bulk"
	Cut      Goal = "cut"
	Maintain Goal = "maintain"
)

func ParseGoal(s string) Goal {
	switch g := Goal(strings.ToLower(strings.TrimSpace(s))); g {
	case Bulk, Cut:
		return g
	default:
		return Maintain
	}
}

func (g Goal) calorieFactor() float64 {
	switch g {
	case Bulk:
		return 1.1
	case Cut:
		return 0.85
	default:
		return 1.0
	}
}

// ActivityLevels maps the activity level names offered by the calculator
// to their TDEE multipliers.
var ActivityLevels = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BodyMetrics feeds the BMR estimate. The zero value is replaced by
// DefaultBodyMetrics.
type BodyMetrics struct {
	HeightCm float64
	AgeYears float64
}

// DefaultBodyMetrics are used when the caller has no profile to bind to.
var DefaultBodyMetrics = BodyMetrics{
	HeightCm: 180,
	AgeYears: 28,
}

type MacroResult struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

// CalculateMacros estimates daily calories and macro split for the goal.
// Gram values are not rounded.
func CalculateMacros(bodyweightKg float64, goal Goal, activityMultiplier float64, body BodyMetrics) MacroResult {
	if body.HeightCm <= 0 {
		body.HeightCm = DefaultBodyMetrics.HeightCm
	}
	if body.AgeYears <= 0 {
		body.AgeYears = DefaultBodyMetrics.AgeYears
	}

	bmr := 10*bodyweightKg + 6.25*body.HeightCm - 5*body.AgeYears + 5
	tdee := bmr * activityMultiplier
	calories := tdee * goal.calorieFactor()

	protein := bodyweightKg * 2.2
	fat := calories * 0.25 / 9
	carbs := (calories - protein*4 - fat*9) / 4

	return MacroResult{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatG:     fat,
	}
}
