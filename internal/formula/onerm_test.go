package formula_test

import (
	"math"
	"testing"

	"github.com/2beens/athletepro/internal/formula"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOneRepMax(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		reps    int
		formula formula.OneRMFormula
		want    float64
	}{
		{name: "epley", weight: 100, reps: 5, formula: formula.Epley, want: 100 * (1 + 5.0/30)},
		{name: "brzycki", weight: 100, reps: 5, formula: formula.Brzycki, want: 112.5},
		{name: "lander", weight: 100, reps: 5, formula: formula.Lander, want: 10000 / (101.3 - 2.67123*5)},
		{name: "wathan", weight: 100, reps: 5, formula: formula.Wathan, want: 10000 / (48.8 + 53.8*math.Exp(-0.375))},
		{name: "lombardi", weight: 100, reps: 5, formula: formula.Lombardi, want: 100 * math.Pow(5, 0.1)},
		{name: "unknown falls back to epley", weight: 100, reps: 5, formula: "nope", want: 100 * (1 + 5.0/30)},
		{name: "single rep epley", weight: 140, reps: 1, formula: formula.Epley, want: 140 * (1 + 1.0/30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formula.EstimateOneRepMax(tt.weight, tt.reps, tt.formula)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEstimateOneRepMax_Epley_NotRounded(t *testing.T) {
	got := formula.EstimateOneRepMax(100, 5, formula.Epley)
	assert.InDelta(t, 116.6666666, got, 1e-6)
	assert.Equal(t, 116.7, formula.Round(got, 1))
}

func TestEstimateOneRepMax_BrzyckiSingularity(t *testing.T) {
	got := formula.EstimateOneRepMax(100, 37, formula.Brzycki)
	assert.True(t, math.IsInf(got, 1))
}

func TestParseOneRMFormula(t *testing.T) {
	assert.Equal(t, formula.Brzycki, formula.ParseOneRMFormula("Brzycki"))
	assert.Equal(t, formula.Wathan, formula.ParseOneRMFormula(" wathan "))
	assert.Equal(t, formula.Epley, formula.ParseOneRMFormula(""))
	assert.Equal(t, formula.Epley, formula.ParseOneRMFormula("mayhew"))
	for _, f := range formula.OneRMFormulas() {
		assert.True(t, f.IsValid(), f.String())
	}
}

func TestIntensities(t *testing.T) {
	intensities := formula.Intensities(200)
	require.Len(t, intensities, 3)
	assert.InDelta(t, 170, intensities[0].Weight, 1e-9)
	assert.InDelta(t, 180, intensities[1].Weight, 1e-9)
	assert.InDelta(t, 190, intensities[2].Weight, 1e-9)
	assert.Equal(t, 0.95, intensities[2].Percent)
}
