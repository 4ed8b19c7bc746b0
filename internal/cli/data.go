package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/internal/userdata"

	"github.com/spf13/cobra"
)

func parseSeries(raw string) (userdata.SeriesName, error) {
	name := userdata.SeriesName(raw)
	if !name.IsValid() {
		return "", fmt.Errorf("%w: %q, known series: %v", app.ErrUnknownSeries, raw, userdata.AllSeries())
	}
	return name, nil
}

func newLogCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "log <series> <field=value>...",
		Short: "Append a record to a data series",
		Long: fmt.Sprintf(`Append a record to a data series. Numbers and booleans are stored as such.
An id and the current timestamp are added unless given.

Series: %v

Example:
  athletepro log workouts exercise=squat sets=5 reps=5 load=140`, userdata.AllSeries()),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseSeries(args[0])
			if err != nil {
				return err
			}
			record, err := userdata.ParseRecordFields(args[1:])
			if err != nil {
				return err
			}

			record, err = opts.app.AppendRecord(cmd.Context(), name, record)
			if err != nil {
				return err
			}
			return opts.render(cmd, record, func(w io.Writer) {
				opts.printf(w, "logged %s record %s\n", name, record[userdata.FieldID])
			})
		},
	}
}

func newSeriesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Inspect data series",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [series]",
		Short: "List the records of a series, or record counts of all series",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				counts := make(map[userdata.SeriesName]int)
				for _, name := range userdata.AllSeries() {
					counts[name] = len(opts.app.Series(name))
				}
				return opts.render(cmd, counts, func(w io.Writer) {
					for _, name := range userdata.AllSeries() {
						opts.printf(w, "%-12s %d\n", name, counts[name])
					}
				})
			}

			name, err := parseSeries(args[0])
			if err != nil {
				return err
			}
			records := opts.app.Series(name)
			return opts.render(cmd, records, func(w io.Writer) {
				if len(records) == 0 {
					opts.printf(w, "no %s records\n", name)
					return
				}
				for _, r := range records {
					fields, _ := json.Marshal(r)
					fmt.Fprintln(w, string(fields))
				}
			})
		},
	})

	return cmd
}

func newHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <exercise>",
		Short: "Per-day history of an exercise from the workouts series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := app.NewAnalyzer(opts.app)
			history := analyzer.ExerciseHistory(cmd.Context(), args[0])
			progress := analyzer.Progress(cmd.Context(), args[0])
			rest := analyzer.AvgSetDuration(cmd.Context(), args[0])

			result := struct {
				History        *app.ExerciseHistory        `json:"history"`
				Progress       []app.ProgressData          `json:"progress"`
				AvgSetDuration *app.AvgSetDurationResponse `json:"avgSetDuration"`
			}{history, progress, rest}

			return opts.render(cmd, result, func(w io.Writer) {
				if len(history.Stats) == 0 {
					opts.printf(w, "no %s sets logged\n", args[0])
					return
				}
				days := slices.SortedFunc(maps.Keys(history.Stats), func(x, y time.Time) int {
					return x.Compare(y)
				})
				unit := opts.weightUnit()
				for _, day := range days {
					s := history.Stats[day]
					opts.printf(w, "%s  sets: %d  avg: %.1f %s x %.1f  e1RM: %.1f %s\n",
						day.Format(time.DateOnly), s.Sets, opts.fromKg(s.AvgLoad), unit, s.AvgReps, opts.fromKg(s.TopOneRM), unit)
				}
				if rest.Duration > 0 {
					opts.printf(w, "avg rest between sets: %s\n", rest.Duration.Round(time.Second))
				}
			})
		},
	}
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dashboard stats and pending notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := opts.app.RefreshStats(cmd.Context())
			pending := opts.app.ScanNotifications(cmd.Context())

			result := struct {
				Stats         app.DashboardStats `json:"stats"`
				Notifications []app.Notification `json:"notifications"`
			}{stats, pending}

			return opts.render(cmd, result, func(w io.Writer) {
				unit := opts.weightUnit()
				opts.printf(w, "Weekly volume: %.2f t over %d sets\n", stats.WeeklyTonnage, stats.WeeklySets)
				if stats.TopOneRMExercise != "" {
					opts.printf(w, "Best e1RM this week: %.1f %s (%s)\n", opts.fromKg(stats.TopOneRM), unit, stats.TopOneRMExercise)
				}
				if stats.RecoveryScore > 0 {
					opts.printf(w, "Recovery: %.1f%%\n", stats.RecoveryScore)
				}
				if !stats.NextInjectionDue.IsZero() {
					opts.printf(w, "Next injection: %s\n", stats.NextInjectionDue.Local().Format("Mon Jan 2 15:04"))
				}
				for _, n := range pending {
					opts.printf(w, "[%s] %s\n", n.Kind, n.Message)
				}
			})
		},
	}
}
