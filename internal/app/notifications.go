package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/athletepro/internal/telemetry/tracing"
	"github.com/2beens/athletepro/internal/userdata"

	"go.opentelemetry.io/otel/attribute"
)

type NotificationKind string

const (
	NotificationInjection NotificationKind = "injection"
	NotificationWorkout   NotificationKind = "workout"
	NotificationBloodwork NotificationKind = "bloodwork"
	NotificationRecovery  NotificationKind = "recovery"
)

const (
	injectionLeadTime = 24 * time.Hour
	workoutGap        = 48 * time.Hour
	bloodworkInterval = 90 * 24 * time.Hour
	painWindow        = 72 * time.Hour
	highPainLevel     = 7
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	Due     time.Time        `json:"due"`
}

// Notifications returns the result of the last scan.
func (a *App) Notifications() []Notification {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return slices.Clone(a.notifications)
}

// ScanNotifications looks through the series for things that need the
// athlete's attention. Nothing is reported while notifications are disabled.
// The result is ordered by due time.
func (a *App) ScanNotifications(ctx context.Context) []Notification {
	_, span := tracing.GlobalTracer.Start(ctx, "app.scan-notifications")
	defer span.End()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.settings.NotificationsEnabled {
		a.notifications = nil
		return nil
	}

	now := a.now()
	var pending []Notification

	lastInjection, onCycle := latestTimestamp(a.data[userdata.SeriesCycle])
	if onCycle {
		due := lastInjection.Add(injectionInterval)
		if !due.After(now.Add(injectionLeadTime)) {
			pending = append(pending, Notification{
				Kind:    NotificationInjection,
				Message: fmt.Sprintf("injection due %s", due.Format("Mon 15:04")),
				Due:     due,
			})
		}

		lastBloodwork, ok := latestTimestamp(a.data[userdata.SeriesBloodwork])
		if !ok || now.Sub(lastBloodwork) > bloodworkInterval {
			pending = append(pending, Notification{
				Kind:    NotificationBloodwork,
				Message: "bloodwork check due while on cycle",
				Due:     now,
			})
		}
	}

	if lastWorkout, ok := latestTimestamp(a.data[userdata.SeriesWorkouts]); !ok {
		pending = append(pending, Notification{
			Kind:    NotificationWorkout,
			Message: "no workouts logged yet",
			Due:     now,
		})
	} else if gap := now.Sub(lastWorkout); gap > workoutGap {
		pending = append(pending, Notification{
			Kind:    NotificationWorkout,
			Message: fmt.Sprintf("no workout logged in %d days", int(gap.Hours()/24)),
			Due:     now,
		})
	}

	for _, r := range a.data[userdata.SeriesInjuries] {
		ts, ok := r.Timestamp()
		if !ok || now.Sub(ts) > painWindow {
			continue
		}
		if level, ok := r.Number("level"); ok && level >= highPainLevel {
			pending = append(pending, Notification{
				Kind:    NotificationRecovery,
				Message: fmt.Sprintf("pain level %.0f reported at %s, consider a recovery day", level, r.String("location")),
				Due:     ts,
			})
		}
	}

	slices.SortStableFunc(pending, func(x, y Notification) int {
		return x.Due.Compare(y.Due)
	})

	span.SetAttributes(attribute.Int("pending", len(pending)))
	a.notifications = pending
	return slices.Clone(pending)
}
