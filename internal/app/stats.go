package app

import (
	"context"
	"maps"
	"time"

	"github.com/2beens/athletepro/internal/formula"
	"github.com/2beens/athletepro/internal/telemetry/tracing"
	"github.com/2beens/athletepro/internal/userdata"
)

const (
	statsWindow = 7 * 24 * time.Hour
	// with the default 2 injections per week
	injectionInterval = 7 * 24 * time.Hour / formula.DefaultInjectionsPerWeek
)

// DashboardStats is the header summary: training volume, strength and
// recovery over the last week plus the cycle schedule.
type DashboardStats struct {
	RefreshedAt time.Time `json:"refreshedAt"`
	// WeeklyTonnage is the sum of sets*reps*load of the last 7 days, in tonnes.
	WeeklyTonnage    float64 `json:"weeklyTonnage"`
	WeeklySets       int     `json:"weeklySets"`
	TopOneRM         float64 `json:"topOneRM"`
	TopOneRMExercise string  `json:"topOneRMExercise,omitempty"`
	// RecoveryScore is the average recovery score of the last 7 days,
	// zero when nothing was reported.
	RecoveryScore    float64                     `json:"recoveryScore"`
	LastInjection    time.Time                   `json:"lastInjection,omitzero"`
	NextInjectionDue time.Time                   `json:"nextInjectionDue,omitzero"`
	SeriesCounts     map[userdata.SeriesName]int `json:"seriesCounts"`
}

func (a *App) Stats() DashboardStats {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	stats := a.stats
	stats.SeriesCounts = maps.Clone(a.stats.SeriesCounts)
	return stats
}

// RefreshStats recomputes the dashboard stats from the in-memory series.
func (a *App) RefreshStats(ctx context.Context) DashboardStats {
	_, span := tracing.GlobalTracer.Start(ctx, "app.refresh-stats")
	defer span.End()

	a.mutex.Lock()
	a.refreshStatsLocked()
	a.mutex.Unlock()
	return a.Stats()
}

func (a *App) refreshStatsLocked() {
	now := a.now()
	since := now.Add(-statsWindow)

	stats := DashboardStats{
		RefreshedAt:  now,
		SeriesCounts: make(map[userdata.SeriesName]int, len(a.data)),
	}

	for name, records := range a.data {
		stats.SeriesCounts[name] = len(records)
		a.metrics.GaugeSeriesRecords.WithLabelValues(name.String()).Set(float64(len(records)))
	}

	var tonnage float64
	for _, r := range a.data[userdata.SeriesWorkouts] {
		ts, ok := r.Timestamp()
		if !ok || ts.Before(since) || ts.After(now) {
			continue
		}
		set, ok := workoutSetFromRecord(r)
		if !ok {
			continue
		}
		tonnage += formula.CalculateVolume(set.Sets, set.Reps, set.Load).Tonnage
		stats.WeeklySets += set.Sets
		if oneRM := formula.EstimateOneRepMax(set.Load, set.Reps, formula.Epley); oneRM > stats.TopOneRM {
			stats.TopOneRM = oneRM
			stats.TopOneRMExercise = set.Exercise
		}
	}
	stats.WeeklyTonnage = formula.Round(tonnage, 2)
	stats.TopOneRM = formula.Round(stats.TopOneRM, 1)

	var scoreSum float64
	var scores int
	for _, r := range a.data[userdata.SeriesRecovery] {
		ts, ok := r.Timestamp()
		if !ok || ts.Before(since) {
			continue
		}
		if score, ok := r.Number("score"); ok {
			scoreSum += score
			scores++
		}
	}
	if scores > 0 {
		stats.RecoveryScore = formula.Round(scoreSum/float64(scores), 1)
	}

	if last, ok := latestTimestamp(a.data[userdata.SeriesCycle]); ok {
		stats.LastInjection = last
		stats.NextInjectionDue = last.Add(injectionInterval)
	}

	a.stats = stats
	a.metrics.GaugeLifeSignal.Set(float64(now.Unix()))
}

// workoutSetFromRecord reads a workout record. Sets default to 1 for
// records logged as single sets; reps and load are required.
func workoutSetFromRecord(r userdata.Record) (userdata.WorkoutSet, bool) {
	reps, okReps := r.Number("reps")
	load, okLoad := r.Number("load")
	if !okReps || !okLoad || reps <= 0 || load <= 0 {
		return userdata.WorkoutSet{}, false
	}
	sets := 1.0
	if n, ok := r.Number("sets"); ok && n > 0 {
		sets = n
	}
	ts, _ := r.Timestamp()
	return userdata.WorkoutSet{
		Timestamp: ts,
		Exercise:  r.String("exercise"),
		Sets:      int(sets),
		Reps:      int(reps),
		Load:      load,
	}, true
}

func latestTimestamp(records []userdata.Record) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range records {
		ts, ok := r.Timestamp()
		if !ok {
			continue
		}
		if !found || ts.After(latest) {
			latest = ts
			found = true
		}
	}
	return latest, found
}
