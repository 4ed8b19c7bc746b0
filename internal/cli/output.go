package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/2beens/athletepro/internal/formula"
	"github.com/2beens/athletepro/internal/userdata"

	"github.com/spf13/cobra"
)

// render writes v as JSON with --format json, otherwise calls text.
func (o *RootOptions) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func (o *RootOptions) printf(w io.Writer, format string, args ...any) {
	o.printer.Fprintf(w, format, args...)
}

func (o *RootOptions) imperial() bool {
	return o.app.Settings().Units == userdata.UnitsImperial
}

func (o *RootOptions) weightUnit() string {
	if o.imperial() {
		return "lbs"
	}
	return "kg"
}

// toKg converts a weight typed in the user's units.
func (o *RootOptions) toKg(v float64) float64 {
	if o.imperial() {
		return formula.LbsToKg(v)
	}
	return v
}

// fromKg converts a weight for display in the user's units.
func (o *RootOptions) fromKg(kg float64) float64 {
	if o.imperial() {
		return formula.KgToLbs(kg)
	}
	return kg
}

func parsePositive(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return v, nil
}

func parseCount(name, raw string, maxValue int) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", name, raw)
	}
	if v < 1 || (maxValue > 0 && v > maxValue) {
		if maxValue > 0 {
			return 0, fmt.Errorf("%s must be between 1 and %d", name, maxValue)
		}
		return 0, fmt.Errorf("%s must be at least 1", name)
	}
	return v, nil
}
