package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/2beens/athletepro/internal/store"
	"github.com/2beens/athletepro/internal/telemetry/metrics"
	"github.com/2beens/athletepro/internal/telemetry/tracing"
	"github.com/2beens/athletepro/internal/userdata"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	// ErrPersist is returned when the store rejected a write. In-memory
	// profile and settings keep the new value, an appended record is
	// dropped again.
	ErrPersist       = errors.New("persist failed")
	ErrUnknownSeries = errors.New("unknown data series")
	ErrInvalidValue  = errors.New("value must be a finite number")
)

type Params struct {
	Store   *store.Store
	Metrics *metrics.Manager
	// Now is used for record timestamps and stats windows, defaults to time.Now.
	Now func() time.Time
}

// App is the application context: it owns the in-memory copy of the
// profile, settings and data series and flushes every mutation to the
// store right away. All methods are safe for concurrent use.
type App struct {
	mutex   sync.Mutex
	store   *store.Store
	metrics *metrics.Manager
	now     func() time.Time

	profile  userdata.UserProfile
	settings userdata.Settings
	data     userdata.Data

	stats         DashboardStats
	notifications []Notification
}

func New(ctx context.Context, params Params) *App {
	if params.Metrics == nil {
		params.Metrics = metrics.NewTestManager()
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	a := &App{
		store:   params.Store,
		metrics: params.Metrics,
		now:     params.Now,
	}
	a.Reload(ctx)
	return a
}

// Reload replaces the in-memory state with what the store holds.
func (a *App) Reload(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.reload")
	defer span.End()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.profile = store.Load[userdata.UserProfile](ctx, a.store, store.KeyUser)
	a.settings = store.Load[userdata.Settings](ctx, a.store, store.KeySettings)
	a.data = userdata.NewData()
	for _, name := range userdata.AllSeries() {
		a.data[name] = store.Load[[]userdata.Record](ctx, a.store, store.SeriesKey(name))
	}
	a.refreshStatsLocked()
}

func (a *App) Profile() userdata.UserProfile {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.profile
}

func (a *App) Settings() userdata.Settings {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.settings
}

// Series returns a copy of the named series, nil for unknown names.
func (a *App) Series(name userdata.SeriesName) []userdata.Record {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	records, ok := a.data[name]
	if !ok {
		return nil
	}
	return slices.Clone(records)
}

func (a *App) SaveProfile(ctx context.Context, profile userdata.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.save-profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.profile = profile
	if !store.Save(ctx, a.store, store.KeyUser, profile) {
		return fmt.Errorf("save profile: %w", ErrPersist)
	}
	return nil
}

func (a *App) SaveSettings(ctx context.Context, settings userdata.Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.save-settings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.settings = settings
	if !store.Save(ctx, a.store, store.KeySettings, settings) {
		return fmt.Errorf("save settings: %w", ErrPersist)
	}
	return nil
}

// AppendRecord stamps the record with an id and timestamp when missing,
// appends it to the series and persists the whole series.
func (a *App) AppendRecord(ctx context.Context, name userdata.SeriesName, record userdata.Record) (_ userdata.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.append-record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("series", name.String()))

	if !name.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeries, name)
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	record = userdata.Stamp(record, a.now())
	series := append(a.data[name], record)
	if !store.Save(ctx, a.store, store.SeriesKey(name), series) {
		return record, fmt.Errorf("save series %s: %w", name, ErrPersist)
	}
	a.data[name] = series
	a.metrics.GaugeSeriesRecords.WithLabelValues(name.String()).Set(float64(len(series)))
	log.Debugf("appended record %s to %s", record[userdata.FieldID], name)
	return record, nil
}

// SaveAll writes every key from the in-memory state. Used by auto-save.
func (a *App) SaveAll(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.saveAllLocked(ctx)
}

func (a *App) saveAllLocked(ctx context.Context) error {
	var failed []string
	if !store.Save(ctx, a.store, store.KeyUser, a.profile) {
		failed = append(failed, string(store.KeyUser))
	}
	if !store.Save(ctx, a.store, store.KeySettings, a.settings) {
		failed = append(failed, string(store.KeySettings))
	}
	for _, name := range userdata.AllSeries() {
		if !store.Save(ctx, a.store, store.SeriesKey(name), a.data[name]) {
			failed = append(failed, name.String())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("save %v: %w", failed, ErrPersist)
	}
	return nil
}

// Reset removes every persisted key under the namespace and puts the
// in-memory state back to defaults. Calling it twice is the same as once.
func (a *App) Reset(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.profile = userdata.DefaultUserProfile()
	a.settings = userdata.DefaultSettings()
	a.data = userdata.NewData()
	a.notifications = nil
	a.refreshStatsLocked()

	if !a.store.Clear(ctx) {
		return fmt.Errorf("clear store: %w", ErrPersist)
	}
	log.Warnln("all data removed, state reset to defaults")
	return nil
}
