package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK        = "ok"
	ResultFailed    = "failed"
	ResultMissing   = "missing"
	ResultMalformed = "malformed"
)

type Manager struct {
	// counters
	CounterStoreLoads   *prometheus.CounterVec
	CounterStoreSaves   *prometheus.CounterVec
	CounterCalculations *prometheus.CounterVec
	CounterServiceTicks *prometheus.CounterVec
	CounterBackups      *prometheus.CounterVec

	// gauges
	GaugeSeriesRecords *prometheus.GaugeVec
	GaugeLifeSignal    prometheus.Gauge

	// histograms
	HistStoreOpDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("athletepro", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("athletepro", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterStoreLoads := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_load_total",
		Help:      "The total number of store loads by key and result",
	}, []string{"key", "result"})
	counterStoreSaves := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_save_total",
		Help:      "The total number of store saves by key and result",
	}, []string{"key", "result"})
	counterCalculations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "calculations_total",
		Help:      "The total number of calculator runs by kind",
	}, []string{"kind"})
	counterServiceTicks := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "service_ticks_total",
		Help:      "The total number of background service runs",
	}, []string{"service"})
	counterBackups := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "backups_total",
		Help:      "The total number of exports and imports by result",
	}, []string{"op", "result"})

	gaugeSeriesRecords := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "series_records",
		Help:      "Current number of records per data series",
	}, []string{"series"})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Unix time of the last stats refresh",
	})

	histStoreOpDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_op_duration_seconds",
		Help:      "Histogram of store operation duration in seconds",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"op"})

	return &Manager{
		CounterStoreLoads:   counterStoreLoads,
		CounterStoreSaves:   counterStoreSaves,
		CounterCalculations: counterCalculations,
		CounterServiceTicks: counterServiceTicks,
		CounterBackups:      counterBackups,
		GaugeSeriesRecords:  gaugeSeriesRecords,
		GaugeLifeSignal:     gaugeLifeSignal,
		HistStoreOpDuration: histStoreOpDuration,
	}
}
