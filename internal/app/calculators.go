package app

import (
	"context"
	"fmt"
	"math"

	"github.com/2beens/athletepro/internal/formula"
	"github.com/2beens/athletepro/internal/userdata"
)

// Calculator wraps the formula engine with the stored profile and counts
// every run. It never persists anything except conversions.
type Calculator struct {
	app *App
}

func (a *App) Calculator() *Calculator {
	return &Calculator{app: a}
}

func (c *Calculator) count(kind string) {
	c.app.metrics.CounterCalculations.WithLabelValues(kind).Inc()
}

func (c *Calculator) OneRepMax(weight float64, reps int, f formula.OneRMFormula) (float64, []formula.Intensity) {
	c.count("1rm")
	oneRM := formula.EstimateOneRepMax(weight, reps, f)
	return oneRM, formula.Intensities(oneRM)
}

// Wilks uses the profile bodyweight when bodyweight is not positive.
func (c *Calculator) Wilks(bodyweight, total float64, gender formula.Gender) float64 {
	c.count("wilks")
	if bodyweight <= 0 {
		bodyweight = c.app.Profile().Bodyweight
	}
	return formula.CalculateWilks(bodyweight, total, gender)
}

func (c *Calculator) Volume(sets, reps int, load float64) formula.VolumeResult {
	c.count("volume")
	return formula.CalculateVolume(sets, reps, load)
}

func (c *Calculator) Dose(weeklyDoseMg, concentration float64, injectionsPerWeek, cycleWeeks int) formula.DoseResult {
	c.count("dose")
	return formula.CalculateDose(weeklyDoseMg, concentration, injectionsPerWeek, cycleWeeks)
}

// Macros binds the estimate to the stored profile: bodyweight (when
// bodyweight is not positive), height and age.
func (c *Calculator) Macros(bodyweight float64, goal formula.Goal, activity float64) formula.MacroResult {
	c.count("macros")
	profile := c.app.Profile()
	if bodyweight <= 0 {
		bodyweight = profile.Bodyweight
	}
	return formula.CalculateMacros(bodyweight, goal, activity, formula.BodyMetrics{
		HeightCm: profile.Height,
		AgeYears: float64(profile.Age),
	})
}

func (c *Calculator) RIRToRPE(rir float64) (float64, bool) {
	c.count("rpe")
	return formula.RIRToRPE(rir)
}

func (c *Calculator) RPEToRIR(rpe float64) (float64, bool) {
	c.count("rpe")
	return formula.RPEToRIR(rpe)
}

// ConvertWeight converts between kg and lbs and logs the conversion in the
// conversions series. from is "kg" or "lbs".
func (c *Calculator) ConvertWeight(ctx context.Context, value float64, from string) (userdata.Conversion, error) {
	c.count("convert")
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return userdata.Conversion{}, fmt.Errorf("convert %v: %w", value, ErrInvalidValue)
	}
	conv := userdata.Conversion{
		Timestamp: c.app.now(),
		Input:     value,
	}
	if from == "lbs" {
		conv.From, conv.To = "lbs", "kg"
		conv.Output = formula.Round(formula.LbsToKg(value), 2)
	} else {
		conv.From, conv.To = "kg", "lbs"
		conv.Output = formula.Round(formula.KgToLbs(value), 2)
	}

	if _, err := c.app.AppendRecord(ctx, userdata.SeriesConversions, userdata.NewConversionRecord(conv)); err != nil {
		return conv, err
	}
	return conv, nil
}
