package formula

import "math"

const kgPerLb = 2.20462

func KgToLbs(kg float64) float64 {
	return kg * kgPerLb
}

func LbsToKg(lbs float64) float64 {
	return lbs / kgPerLb
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
