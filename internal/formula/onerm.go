package formula

import (
	"math"
	"strings"
)

type OneRMFormula string

const (
	Epley    OneRMFormula = "epley"
	Brzycki  OneRMFormula = "brzycki"
	Lander   OneRMFormula = "lander"
	Wathan   OneRMFormula = "wathan"
	Lombardi OneRMFormula = "lombardi"
)

// MaxOneRMReps is the highest rep count the estimators are considered reliable for.
const MaxOneRMReps = 12

func OneRMFormulas() []OneRMFormula {
	return []OneRMFormula{Epley, Brzycki, Lander, Wathan, Lombardi}
}

func (f OneRMFormula) String() string {
	return string(f)
}

func (f OneRMFormula) IsValid() bool {
	switch f {
	case Epley, Brzycki, Lander, Wathan, Lombardi:
		return true
	default:
		return false
	}
}

// ParseOneRMFormula maps a name to a formula, falling back to Epley.
func ParseOneRMFormula(name string) OneRMFormula {
	f := OneRMFormula(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return Epley
	}
	return f
}

// EstimateOneRepMax estimates the one-rep max from a set of reps at the given weight.
// Brzycki is singular at reps == 37, that case is left to IEEE semantics (+Inf).
func EstimateOneRepMax(weight float64, reps int, formula OneRMFormula) float64 {
	r := float64(reps)
	switch formula {
	case Brzycki:
		return weight * (36 / (37 - r))
	case Lander:
		return (100 * weight) / (101.3 - 2.67123*r)
	case Wathan:
		return (100 * weight) / (48.8 + 53.8*math.Exp(-0.075*r))
	case Lombardi:
		return weight * math.Pow(r, 0.1)
	default:
		return weight * (1 + r/30)
	}
}

// Intensity is a percentage based training target derived from a one-rep max.
type Intensity struct {
	Percent float64 `json:"percent"`
	Weight  float64 `json:"weight"`
}

var intensityPercents = []float64{0.85, 0.90, 0.95}

// Intensities returns the 85/90/95% targets for the given one-rep max.
func Intensities(oneRM float64) []Intensity {
	out := make([]Intensity, 0, len(intensityPercents))
	for _, p := range intensityPercents {
		out = append(out, Intensity{
			Percent: p,
			Weight:  oneRM * p,
		})
	}
	return out
}
