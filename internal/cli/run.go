package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/athletepro/internal/app"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the background services until interrupted",
		Long:  "Run stats refresh, notification scan and auto-save on their configured intervals until SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return opts.runServices(ctx)
		},
	}
}

func (o *RootOptions) runServices(ctx context.Context) error {
	services := app.NewServices(o.app, app.ServicesParams{
		StatsRefreshInterval:     o.cfg.StatsRefreshInterval,
		NotificationScanInterval: o.cfg.NotificationScanInterval,
		AutoSaveInterval:         o.cfg.AutoSaveInterval,
		MetricsTextfile:          o.cfg.MetricsTextfile,
		Gatherer:                 o.registry,
	})
	services.Start(ctx)

	<-ctx.Done()
	log.Warnln("stopping background services ...")
	services.Wait()

	// flush whatever is in memory before the process goes away
	if err := o.app.SaveAll(context.Background()); err != nil {
		return err
	}
	log.Infoln("state saved, bye")
	return nil
}
