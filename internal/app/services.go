package app

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/athletepro/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	ServiceStatsRefresh     = "stats-refresh"
	ServiceNotificationScan = "notification-scan"
	ServiceAutoSave         = "auto-save"
)

type ServicesParams struct {
	StatsRefreshInterval     time.Duration
	NotificationScanInterval time.Duration
	AutoSaveInterval         time.Duration
	// MetricsTextfile, when set, receives the registry contents after
	// every stats refresh.
	MetricsTextfile string
	Gatherer        prometheus.Gatherer
}

// Services runs the periodic background work: stats refresh, pending
// notification scan and auto-save. Each runs in its own goroutine and
// goes through the App mutex, so a tick never overlaps a mutation.
type Services struct {
	app    *App
	params ServicesParams

	mutex   sync.Mutex
	started bool
	wg      sync.WaitGroup
}

func NewServices(app *App, params ServicesParams) *Services {
	if params.StatsRefreshInterval <= 0 {
		params.StatsRefreshInterval = 60 * time.Second
	}
	if params.NotificationScanInterval <= 0 {
		params.NotificationScanInterval = 300 * time.Second
	}
	if params.AutoSaveInterval <= 0 {
		params.AutoSaveInterval = 30 * time.Second
	}
	return &Services{
		app:    app,
		params: params,
	}
}

// Start launches the tickers. They stop when ctx is done. Calling Start
// again is a no-op, so there is never more than one ticker per service.
func (s *Services) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started {
		log.Debugln("background services already started")
		return
	}
	s.started = true

	s.run(ctx, ServiceStatsRefresh, s.params.StatsRefreshInterval, s.refreshStats)
	s.run(ctx, ServiceNotificationScan, s.params.NotificationScanInterval, s.scanNotifications)
	s.run(ctx, ServiceAutoSave, s.params.AutoSaveInterval, s.autoSave)

	log.Infoln("background services started")
}

// Wait blocks until all tickers have exited.
func (s *Services) Wait() {
	s.wg.Wait()
}

func (s *Services) run(ctx context.Context, name string, interval time.Duration, tick func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Debugf("service %s stopped", name)
				return
			case <-ticker.C:
				tick(ctx)
				s.app.metrics.CounterServiceTicks.WithLabelValues(name).Inc()
			}
		}
	}()
}

func (s *Services) refreshStats(ctx context.Context) {
	stats := s.app.RefreshStats(ctx)
	log.Tracef("stats refreshed: %.2ft this week", stats.WeeklyTonnage)

	if s.params.MetricsTextfile == "" || s.params.Gatherer == nil {
		return
	}
	if err := metrics.WriteTextfile(s.params.MetricsTextfile, s.params.Gatherer); err != nil {
		log.Errorf("stats refresh: %s", err)
	}
}

func (s *Services) scanNotifications(ctx context.Context) {
	pending := s.app.ScanNotifications(ctx)
	if len(pending) > 0 {
		log.Infof("%d pending notifications", len(pending))
	}
}

func (s *Services) autoSave(ctx context.Context) {
	if !s.app.Settings().AutoSave {
		return
	}
	if err := s.app.SaveAll(ctx); err != nil {
		log.Errorf("auto-save: %s", err)
	}
}
