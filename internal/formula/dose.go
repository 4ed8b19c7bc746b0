package formula

const (
	DefaultInjectionsPerWeek = 2
	DefaultCycleWeeks        = 12
)

type DoseResult struct {
	WeeklyMl       float64 `json:"weeklyMl"`
	PerInjectionMl float64 `json:"perInjectionMl"`
	TotalCycleMl   float64 `json:"totalCycleMl"`
}

// CalculateDose converts a weekly dose in mg into ml volumes for the given
// concentration. Non-positive injection or week counts use the defaults,
// a non-positive dose or concentration yields the zero result.
func CalculateDose(weeklyDoseMg, concentrationMgPerMl float64, injectionsPerWeek, cycleWeeks int) DoseResult {
	if weeklyDoseMg <= 0 || concentrationMgPerMl <= 0 {
		return DoseResult{}
	}
	if injectionsPerWeek <= 0 {
		injectionsPerWeek = DefaultInjectionsPerWeek
	}
	if cycleWeeks <= 0 {
		cycleWeeks = DefaultCycleWeeks
	}

	weeklyMl := weeklyDoseMg / concentrationMgPerMl
	return DoseResult{
		WeeklyMl:       weeklyMl,
		PerInjectionMl: weeklyMl / float64(injectionsPerWeek),
		TotalCycleMl:   weeklyMl * float64(cycleWeeks),
	}
}
