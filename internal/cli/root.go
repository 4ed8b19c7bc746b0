package cli

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/internal/config"
	"github.com/2beens/athletepro/internal/logging"
	"github.com/2beens/athletepro/internal/modules"
	"github.com/2beens/athletepro/internal/storage"
	"github.com/2beens/athletepro/internal/store"
	"github.com/2beens/athletepro/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags and the state built from them before
// any subcommand runs.
type RootOptions struct {
	Env        string
	ConfigPath string
	Backend    string
	DataDir    string
	Format     string
	Verbose    bool

	cfg      *config.Config
	medium   storage.Medium
	registry *prometheus.Registry
	metrics  *metrics.Manager
	app      *app.App
	modules  *modules.Registry
	printer  *message.Printer
	now      func() time.Time
}

// NewRootCommand creates the athletepro command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "athletepro",
		Version:       app.AppVersion,
		Short:         "AthletePro - training calculators and local athlete log",
		Long:          "Strength, dosing and nutrition calculators plus a local log of workouts, recovery, cycles and bloodwork.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.teardown()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", config.EnvDevelopment, "environment [prod | production | dev | development]")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "./config.toml", "path for the TOML config file")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend override (sqlite|redis|memory)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory override for the sqlite backend")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newCalcCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newSettingsCommand(opts))
	cmd.AddCommand(newLogCommand(opts))
	cmd.AddCommand(newSeriesCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newModulesCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newRunCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(o.Env, o.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.Backend != "" {
		cfg.StorageBackend = o.Backend
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	o.cfg = cfg

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "athletepro-cli",
		Stdout:           cmd.ErrOrStderr(),
	})

	if o.medium == nil {
		medium, err := storage.Open(ctx, storage.OpenParams{
			Backend: cfg.StorageBackend,
			DataDir: cfg.DataDir,
			Redis: storage.RedisParams{
				Host:     cfg.RedisHost,
				Port:     cfg.RedisPort,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			},
			CacheSizeMB:   cfg.CacheSizeMB,
			MaxValueBytes: cfg.MaxValueBytes,
		})
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		o.medium = medium
	}

	o.registry = metrics.SetupPrometheus()
	o.metrics = metrics.NewManager("athletepro", "cli", o.registry)
	if o.now == nil {
		o.now = time.Now
	}

	o.app = app.New(ctx, app.Params{
		Store:   store.New(o.medium, cfg.Namespace, o.metrics),
		Metrics: o.metrics,
		Now:     o.now,
	})
	o.modules = modules.DefaultRegistry()
	o.printer = message.NewPrinter(language.English)
	return nil
}

func (o *RootOptions) teardown() error {
	if o.cfg != nil && o.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(o.cfg.MetricsTextfile, o.registry); err != nil {
			log.Errorf("%s", err)
		}
	}
	if o.medium == nil {
		return nil
	}
	if err := o.medium.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
