package app

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/2beens/athletepro/internal/formula"
	"github.com/2beens/athletepro/internal/telemetry/tracing"
	"github.com/2beens/athletepro/internal/userdata"

	"go.opentelemetry.io/otel/attribute"
)

type seriesReader interface {
	Series(name userdata.SeriesName) []userdata.Record
}

// Analyzer derives training statistics from the workouts series.
type Analyzer struct {
	source seriesReader
}

func NewAnalyzer(source seriesReader) *Analyzer {
	return &Analyzer{
		source: source,
	}
}

// ExerciseHistory represents the history of an exercise
// so that, for each day, we get the average load and reps per set
type ExerciseHistory struct {
	Exercise string                      `json:"exercise"`
	Stats    map[time.Time]ExerciseStats `json:"stats"`
}

type ExerciseStats struct {
	AvgLoad  float64 `json:"avgLoad"`
	AvgReps  float64 `json:"avgReps"`
	Sets     int     `json:"sets"`
	TopOneRM float64 `json:"topOneRM"`
}

// ProgressData represents progress statistics for a specific date
type ProgressData struct {
	Date        time.Time `json:"date"`
	AvgLoad     float64   `json:"avgLoad"`
	MaxLoad     float64   `json:"maxLoad"`
	TotalVolume float64   `json:"totalVolume"` // sum of sets * reps * load for the day
	Entries     int       `json:"entries"`
}

type AvgSetDurationResponse struct {
	// Duration is the average time between logged sets over all days
	Duration time.Duration `json:"duration"`
	// DurationPerDay is the average time between logged sets for each day
	DurationPerDay map[time.Time]time.Duration `json:"durationPerDay"`
}

type ExercisePercentageInfo struct {
	Exercise   string  `json:"exercise"`
	Percentage float64 `json:"percentage"`
}

// workouts returns the readable workout sets for exercise (all when
// empty), ordered by time.
func (a *Analyzer) workouts(exercise string) []userdata.WorkoutSet {
	var sets []userdata.WorkoutSet
	for _, r := range a.source.Series(userdata.SeriesWorkouts) {
		set, ok := workoutSetFromRecord(r)
		if !ok || set.Timestamp.IsZero() {
			continue
		}
		if exercise != "" && !strings.EqualFold(set.Exercise, exercise) {
			continue
		}
		sets = append(sets, set)
	}
	slices.SortStableFunc(sets, func(x, y userdata.WorkoutSet) int {
		return x.Timestamp.Compare(y.Timestamp)
	})
	return sets
}

func groupByDay(sets []userdata.WorkoutSet) map[time.Time][]userdata.WorkoutSet {
	day2sets := make(map[time.Time][]userdata.WorkoutSet)
	for _, s := range sets {
		day := s.Timestamp.UTC().Truncate(24 * time.Hour)
		day2sets[day] = append(day2sets[day], s)
	}
	return day2sets
}

func (a *Analyzer) ExerciseHistory(ctx context.Context, exercise string) *ExerciseHistory {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.exercise-history")
	defer span.End()
	span.SetAttributes(attribute.String("exercise", exercise))

	history := &ExerciseHistory{
		Exercise: exercise,
		Stats:    make(map[time.Time]ExerciseStats),
	}

	for day, daySets := range groupByDay(a.workouts(exercise)) {
		var load, reps, topOneRM float64
		sets := 0
		for _, s := range daySets {
			load += s.Load
			reps += float64(s.Reps)
			sets += s.Sets
			topOneRM = max(topOneRM, formula.EstimateOneRepMax(s.Load, s.Reps, formula.Epley))
		}
		history.Stats[day] = ExerciseStats{
			AvgLoad:  formula.Round(load/float64(len(daySets)), 1),
			AvgReps:  formula.Round(reps/float64(len(daySets)), 1),
			Sets:     sets,
			TopOneRM: formula.Round(topOneRM, 1),
		}
	}

	return history
}

// Progress returns per-day load and volume for exercise, oldest first.
func (a *Analyzer) Progress(ctx context.Context, exercise string) []ProgressData {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.progress")
	defer span.End()
	span.SetAttributes(attribute.String("exercise", exercise))

	var progress []ProgressData
	for day, daySets := range groupByDay(a.workouts(exercise)) {
		p := ProgressData{
			Date:    day,
			Entries: len(daySets),
		}
		var load float64
		for _, s := range daySets {
			load += s.Load
			p.MaxLoad = max(p.MaxLoad, s.Load)
			p.TotalVolume += formula.CalculateVolume(s.Sets, s.Reps, s.Load).Volume
		}
		p.AvgLoad = formula.Round(load/float64(len(daySets)), 1)
		progress = append(progress, p)
	}

	slices.SortFunc(progress, func(x, y ProgressData) int {
		return x.Date.Compare(y.Date)
	})
	return progress
}

// AvgSetDuration calculates the average time between consecutive logged
// sets for each day and over all days. Leave exercise empty to include
// every exercise.
func (a *Analyzer) AvgSetDuration(ctx context.Context, exercise string) *AvgSetDurationResponse {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.avg-set-duration")
	defer span.End()

	avgDurationPerDay := make(map[time.Time]time.Duration)
	for day, daySets := range groupByDay(a.workouts(exercise)) {
		if len(daySets) == 1 {
			continue
		}
		var total time.Duration
		for i := 1; i < len(daySets); i++ {
			total += daySets[i].Timestamp.Sub(daySets[i-1].Timestamp)
		}
		avgDurationPerDay[day] = total / time.Duration(len(daySets)-1)
	}

	resp := &AvgSetDurationResponse{
		DurationPerDay: avgDurationPerDay,
	}
	if len(avgDurationPerDay) == 0 {
		return resp
	}

	for _, d := range avgDurationPerDay {
		resp.Duration += d
	}
	resp.Duration /= time.Duration(len(avgDurationPerDay))
	return resp
}

// ExercisePercentages returns how often each exercise was logged, as a
// percentage of all workout entries.
func (a *Analyzer) ExercisePercentages(ctx context.Context) map[string]ExercisePercentageInfo {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.exercise-percentages")
	defer span.End()

	sets := a.workouts("")
	exercise2count := make(map[string]int)
	exercise2name := make(map[string]string)
	for _, s := range sets {
		key := strings.ToLower(s.Exercise)
		exercise2count[key]++
		if _, ok := exercise2name[key]; !ok {
			exercise2name[key] = s.Exercise
		}
	}

	exercise2percentage := make(map[string]ExercisePercentageInfo, len(exercise2count))
	for key, count := range exercise2count {
		p := float64(count) / float64(len(sets)) * 100
		exercise2percentage[key] = ExercisePercentageInfo{
			Exercise:   exercise2name[key],
			Percentage: formula.Round(p, 2),
		}
	}
	return exercise2percentage
}
