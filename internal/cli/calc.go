package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/2beens/athletepro/internal/formula"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCalcCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Training calculators",
	}

	cmd.AddCommand(newCalcOneRMCommand(opts))
	cmd.AddCommand(newCalcWilksCommand(opts))
	cmd.AddCommand(newCalcVolumeCommand(opts))
	cmd.AddCommand(newCalcDoseCommand(opts))
	cmd.AddCommand(newCalcMacrosCommand(opts))
	cmd.AddCommand(newCalcRPECommand(opts))
	cmd.AddCommand(newCalcConvertCommand(opts))

	return cmd
}

func newCalcOneRMCommand(opts *RootOptions) *cobra.Command {
	var formulaName string

	cmd := &cobra.Command{
		Use:   "1rm <weight> <reps>",
		Short: "Estimate the one-rep max",
		Long: fmt.Sprintf(`Estimate the one-rep max from a set of up to %d reps.

Formulas: %v. Unknown names fall back to epley.`, formula.MaxOneRMReps, formula.OneRMFormulas()),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := parsePositive("weight", args[0])
			if err != nil {
				return err
			}
			reps, err := parseCount("reps", args[1], formula.MaxOneRMReps)
			if err != nil {
				return err
			}

			f := formula.ParseOneRMFormula(formulaName)
			oneRM, intensities := opts.app.Calculator().OneRepMax(weight, reps, f)

			result := struct {
				Formula     formula.OneRMFormula `json:"formula"`
				OneRM       float64              `json:"oneRM"`
				Unit        string               `json:"unit"`
				Intensities []formula.Intensity  `json:"intensities"`
			}{f, oneRM, opts.weightUnit(), intensities}

			return opts.render(cmd, result, func(w io.Writer) {
				opts.printf(w, "1RM (%s): %.1f %s\n", f, oneRM, result.Unit)
				for _, in := range intensities {
					opts.printf(w, "  %.0f%%: %.1f %s\n", in.Percent*100, in.Weight, result.Unit)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&formulaName, "formula", "f", string(formula.Epley), "estimation formula")
	return cmd
}

func newCalcWilksCommand(opts *RootOptions) *cobra.Command {
	var (
		bodyweight float64
		gender     string
	)

	cmd := &cobra.Command{
		Use:   "wilks <total>",
		Short: "Wilks score for a powerlifting total",
		Long:  "Wilks score for a powerlifting total. Uses the profile bodyweight unless --bodyweight is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parsePositive("total", args[0])
			if err != nil {
				return err
			}
			if bodyweight < 0 {
				return errors.New("bodyweight cannot be negative")
			}

			var bwKg float64
			if bodyweight > 0 {
				bwKg = opts.toKg(bodyweight)
			}
			score := opts.app.Calculator().Wilks(bwKg, opts.toKg(total), formula.ParseGender(gender))

			return opts.render(cmd, map[string]float64{"wilks": score}, func(w io.Writer) {
				opts.printf(w, "Wilks: %.2f\n", score)
			})
		},
	}

	cmd.Flags().Float64Var(&bodyweight, "bodyweight", 0, "bodyweight, defaults to the profile")
	cmd.Flags().StringVar(&gender, "gender", string(formula.Male), "male or female")
	return cmd
}

func newCalcVolumeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "volume <sets> <reps> <load>",
		Short: "Training volume of a set scheme",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseCount("sets", args[0], 0)
			if err != nil {
				return err
			}
			reps, err := parseCount("reps", args[1], 0)
			if err != nil {
				return err
			}
			load, err := parsePositive("load", args[2])
			if err != nil {
				return err
			}

			res := opts.app.Calculator().Volume(sets, reps, opts.toKg(load))
			return opts.render(cmd, res, func(w io.Writer) {
				opts.printf(w, "Volume: %.1f kg (%.2f t)\n", res.Volume, res.Tonnage)
			})
		},
	}
}

func newCalcDoseCommand(opts *RootOptions) *cobra.Command {
	var injections, weeks int

	cmd := &cobra.Command{
		Use:   "dose <weekly-mg> <mg-per-ml>",
		Short: "Injection volumes for a weekly dose",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dose, err := parsePositive("weekly dose", args[0])
			if err != nil {
				return err
			}
			concentration, err := parsePositive("concentration", args[1])
			if err != nil {
				return err
			}

			res := opts.app.Calculator().Dose(dose, concentration, injections, weeks)
			return opts.render(cmd, res, func(w io.Writer) {
				opts.printf(w, "Weekly: %.2f ml\n", res.WeeklyMl)
				opts.printf(w, "Per injection: %.2f ml\n", res.PerInjectionMl)
				opts.printf(w, "Whole cycle: %.2f ml\n", res.TotalCycleMl)
			})
		},
	}

	cmd.Flags().IntVar(&injections, "injections", formula.DefaultInjectionsPerWeek, "injections per week")
	cmd.Flags().IntVar(&weeks, "weeks", formula.DefaultCycleWeeks, "cycle length in weeks")
	return cmd
}

func newCalcMacrosCommand(opts *RootOptions) *cobra.Command {
	var (
		activity   string
		bodyweight float64
	)

	cmd := &cobra.Command{
		Use:   "macros <bulk|cut|maintain>",
		Short: "Daily calories and macros for a goal",
		Long:  "Daily calories and macros for a goal, using the profile bodyweight, height and age.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			multiplier, ok := formula.ActivityLevels[strings.ToLower(activity)]
			if !ok {
				if multiplier, ok = parseMultiplier(activity); !ok {
					return fmt.Errorf("unknown activity level %q, use one of %v or a multiplier", activity, activityNames())
				}
			}

			var bwKg float64
			if bodyweight > 0 {
				bwKg = opts.toKg(bodyweight)
			}
			goal := formula.ParseGoal(args[0])
			res := opts.app.Calculator().Macros(bwKg, goal, multiplier)

			return opts.render(cmd, res, func(w io.Writer) {
				opts.printf(w, "Goal: %s\n", goal)
				opts.printf(w, "BMR: %.0f kcal, TDEE: %.0f kcal\n", res.BMR, res.TDEE)
				opts.printf(w, "Calories: %.0f kcal\n", res.Calories)
				opts.printf(w, "Protein: %.0f g, Carbs: %.0f g, Fat: %.0f g\n", res.ProteinG, res.CarbsG, res.FatG)
			})
		},
	}

	cmd.Flags().StringVar(&activity, "activity", "moderate", "activity level or multiplier")
	cmd.Flags().Float64Var(&bodyweight, "bodyweight", 0, "bodyweight, defaults to the profile")
	return cmd
}

func parseMultiplier(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 1 || v > 2.5 {
		return 0, false
	}
	return v, true
}

func activityNames() []string {
	names := make([]string, 0, len(formula.ActivityLevels))
	for name := range formula.ActivityLevels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newCalcRPECommand(opts *RootOptions) *cobra.Command {
	var inverse bool

	cmd := &cobra.Command{
		Use:   "rpe <rir>",
		Short: "Map reps in reserve to RPE (or back with --inverse)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", args[0])
			}

			calc := opts.app.Calculator()
			from, to := "RIR", "RPE"
			mapped, ok := calc.RIRToRPE(v)
			if inverse {
				from, to = to, from
				mapped, ok = calc.RPEToRIR(v)
			}
			if !ok {
				return fmt.Errorf("no %s mapping for %s %g, known RIR values: %v", to, from, v, formula.RIRValues())
			}

			return opts.render(cmd, map[string]float64{strings.ToLower(from): v, strings.ToLower(to): mapped}, func(w io.Writer) {
				opts.printf(w, "%s %g = %s %g\n", from, v, to, mapped)
			})
		},
	}

	cmd.Flags().BoolVar(&inverse, "inverse", false, "map RPE to RIR")
	return cmd
}

func newCalcConvertCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <kg|lbs>",
		Short: "Convert a weight between kg and lbs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parsePositive("value", args[0])
			if err != nil {
				return err
			}
			from := strings.ToLower(args[1])
			if from != "kg" && from != "lbs" {
				return fmt.Errorf("unit must be kg or lbs, got %q", args[1])
			}

			conv, err := opts.app.Calculator().ConvertWeight(cmd.Context(), value, from)
			if err != nil {
				log.Errorf("conversion not logged: %s", err)
			}
			return opts.render(cmd, conv, func(w io.Writer) {
				opts.printf(w, "%.2f %s = %.2f %s\n", conv.Input, conv.From, conv.Output, conv.To)
			})
		},
	}
}
