package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/internal/formula"
	"github.com/2beens/athletepro/internal/userdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalc_OneRM(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustExecute("calc", "1rm", "100", "5")
	assert.Contains(t, out, "1RM (epley): 116.7 kg")
	assert.Contains(t, out, "85%: 99.2 kg")
	assert.Contains(t, out, "95%: 110.8 kg")

	var res struct {
		Formula string  `json:"formula"`
		OneRM   float64 `json:"oneRM"`
	}
	c.executeJSON(&res, "calc", "1rm", "100", "5", "--formula", "brzycki")
	assert.Equal(t, "brzycki", res.Formula)
	assert.InDelta(t, 112.5, res.OneRM, 1e-9)

	c.executeJSON(&res, "calc", "1rm", "100", "5", "--formula", "nonsense")
	assert.Equal(t, "epley", res.Formula)

	_, err := c.execute("calc", "1rm", "100", "20")
	assert.EqualError(t, err, "reps must be between 1 and 12")
	_, err = c.execute("calc", "1rm", "--", "-5", "3")
	assert.EqualError(t, err, "weight must be positive")
	_, err = c.execute("calc", "1rm", "NaN", "5")
	assert.EqualError(t, err, "weight must be a finite number")
	_, err = c.execute("calc", "volume", "4", "8", "+Inf")
	assert.EqualError(t, err, "load must be a finite number")
	_, err = c.execute("calc", "convert", "Inf", "kg")
	assert.EqualError(t, err, "value must be a finite number")
	_, err = c.execute("calc", "1rm", "heavy", "3")
	assert.EqualError(t, err, `weight: "heavy" is not a number`)
}

func TestCalc_Others(t *testing.T) {
	c := newTestCLI(t)

	var volume formula.VolumeResult
	c.executeJSON(&volume, "calc", "volume", "4", "8", "100")
	assert.Equal(t, 3200.0, volume.Volume)
	assert.InDelta(t, 3.2, volume.Tonnage, 1e-9)

	var dose formula.DoseResult
	c.executeJSON(&dose, "calc", "dose", "500", "250")
	assert.Equal(t, formula.DoseResult{WeeklyMl: 2, PerInjectionMl: 1, TotalCycleMl: 24}, dose)
	assert.Contains(t, c.mustExecute("calc", "dose", "500", "250", "--injections", "0"), "Per injection: 1.00 ml")

	var wilks map[string]float64
	c.executeJSON(&wilks, "calc", "wilks", "600", "--bodyweight", "92")
	assert.InDelta(t, formula.CalculateWilks(92, 600, formula.Male), wilks["wilks"], 1e-9)

	var macros formula.MacroResult
	c.executeJSON(&macros, "calc", "macros", "cut", "--activity", "sedentary")
	want := formula.CalculateMacros(92, formula.Cut, 1.2, formula.BodyMetrics{HeightCm: 180, AgeYears: 28})
	assert.InDelta(t, want.Calories, macros.Calories, 1e-9)
	_, err := c.execute("calc", "macros", "bulk", "--activity", "couch")
	assert.ErrorContains(t, err, `unknown activity level "couch"`)

	var rpe map[string]float64
	c.executeJSON(&rpe, "calc", "rpe", "2")
	assert.Equal(t, map[string]float64{"rir": 2, "rpe": 8}, rpe)
	rpe = nil
	c.executeJSON(&rpe, "calc", "rpe", "9.5", "--inverse")
	assert.Equal(t, map[string]float64{"rir": 0.5, "rpe": 9.5}, rpe)
	assert.Contains(t, c.mustExecute("calc", "rpe", "3"), "RIR 3 = RPE 7")
	_, err = c.execute("calc", "rpe", "999")
	assert.ErrorContains(t, err, "no RPE mapping for RIR 999")
}

func TestCalc_Convert(t *testing.T) {
	c := newTestCLI(t)

	assert.Equal(t, "100.00 kg = 220.46 lbs\n", c.mustExecute("calc", "convert", "100", "kg"))
	_, err := c.execute("calc", "convert", "100", "stone")
	assert.EqualError(t, err, `unit must be kg or lbs, got "stone"`)

	var records []userdata.Record
	c.executeJSON(&records, "series", "list", "conversions")
	require.Len(t, records, 1)
	assert.Equal(t, "lbs", records[0].String("to"))
}

func TestProfileAndSettings(t *testing.T) {
	c := newTestCLI(t)

	var profile userdata.UserProfile
	c.executeJSON(&profile, "profile", "show")
	assert.Equal(t, userdata.DefaultUserProfile(), profile)

	c.mustExecute("profile", "set", "bodyweight=85", "level=Advanced", "age=31")
	c.executeJSON(&profile, "profile", "show")
	assert.Equal(t, 85.0, profile.Bodyweight)
	assert.Equal(t, userdata.LevelAdvanced, profile.Level)
	assert.Equal(t, 31, profile.Age)

	_, err := c.execute("profile", "set", "level=godlike")
	assert.EqualError(t, err, `unknown level "godlike"`)
	_, err = c.execute("profile", "set", "shoeSize=44")
	assert.EqualError(t, err, `unknown profile field "shoeSize"`)

	out := c.mustExecute("settings", "set", "theme=light", "units=imperial", "autoSave=false")
	assert.Contains(t, out, "Theme: light")
	assert.Contains(t, out, "Auto-save: false")

	// weights are shown and typed in pounds now
	assert.Contains(t, c.mustExecute("profile", "show"), "Bodyweight: 187.4 lbs")
	c.mustExecute("profile", "set", "bodyweight=200")
	c.executeJSON(&profile, "profile", "show")
	assert.InDelta(t, 90.72, profile.Bodyweight, 0.01)

	_, err = c.execute("settings", "set", "theme=neon")
	assert.EqualError(t, err, `unknown theme "neon"`)
	_, err = c.execute("settings", "set", "notifications=maybe")
	assert.EqualError(t, err, "notifications must be true or false")
}

func TestLogSeriesHistoryStats(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustExecute("log", "workouts", "exercise=squat", "sets=5", "reps=5", "load=140", "timestamp=2024-03-04T08:00:00Z")
	assert.Contains(t, out, "logged workouts record ")
	c.mustExecute("log", "workouts", "exercise=squat", "sets=3", "reps=3", "load=160", "timestamp=2024-03-04T08:04:00Z")
	c.mustExecute("log", "recovery", "score=90", "sleepHours=8")

	_, err := c.execute("log", "steroids", "compound=x")
	assert.ErrorIs(t, err, app.ErrUnknownSeries)
	_, err = c.execute("log", "workouts", "novalue")
	assert.EqualError(t, err, `invalid field "novalue", expected key=value`)

	var workouts []userdata.Record
	c.executeJSON(&workouts, "series", "list", "workouts")
	require.Len(t, workouts, 2)
	assert.Equal(t, 140.0, workouts[0]["load"])
	assert.NotEmpty(t, workouts[0].String(userdata.FieldID))

	var counts map[string]int
	c.executeJSON(&counts, "series", "list")
	assert.Equal(t, 2, counts["workouts"])
	assert.Equal(t, 1, counts["recovery"])
	assert.Equal(t, 0, counts["cycle"])

	history := c.mustExecute("history", "squat")
	assert.Contains(t, history, "2024-03-04  sets: 8  avg: 150.0 kg x 4.0")
	assert.Contains(t, history, "avg rest between sets: 4m0s")
	assert.Equal(t, "no deadlift sets logged\n", c.mustExecute("history", "deadlift"))

	var stats struct {
		Stats         app.DashboardStats `json:"stats"`
		Notifications []app.Notification `json:"notifications"`
	}
	c.executeJSON(&stats, "stats")
	// 5*5*140 + 3*3*160 = 3500 + 1440
	assert.Equal(t, 4.94, stats.Stats.WeeklyTonnage)
	assert.Equal(t, 90.0, stats.Stats.RecoveryScore)
	assert.Empty(t, stats.Notifications)
}

func TestModules(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustExecute("modules", "list")
	assert.Contains(t, out, "dashboard")
	assert.Contains(t, out, "Cycle Planner")

	assert.Contains(t, c.mustExecute("modules", "show", "bloodwork"), "Bloodwork Monitoring")
	assert.Contains(t, c.mustExecute("modules", "show", "sleep-lab"), "Sleep Lab\nSystem module\n")
}

func TestExportImport(t *testing.T) {
	src := newTestCLI(t)
	src.mustExecute("profile", "set", "name=Exported")
	src.mustExecute("log", "cycle", "compound=test-e", "doseMg=250")

	dir := t.TempDir()
	out := src.mustExecute("export", "--out", filepath.Join(dir, "backup.json"))
	assert.Equal(t, "exported to "+filepath.Join(dir, "backup.json")+"\n", out)

	var backup app.Backup
	src.executeJSON(&backup, "export", "--out", "-")
	assert.Equal(t, app.AppName, backup.Meta.App)
	assert.Equal(t, "2024-03-04T10:00:00Z", backup.Meta.ExportDate)

	dst := newTestCLI(t)
	assert.Equal(t, "imported "+filepath.Join(dir, "backup.json")+"\n",
		dst.mustExecute("import", filepath.Join(dir, "backup.json")))
	assert.Contains(t, dst.mustExecute("profile", "show"), "Name: Exported")

	var cycle []userdata.Record
	dst.executeJSON(&cycle, "series", "list", "cycle")
	require.Len(t, cycle, 1)
	assert.Equal(t, "test-e", cycle[0].String("compound"))

	foreign := filepath.Join(dir, "foreign.json")
	require.NoError(t, os.WriteFile(foreign, []byte(`{"meta":{"app":"Other","version":"1","exportDate":"2024-01-01T00:00:00Z","dataVersion":1},"user":{},"settings":{},"data":{}}`), 0o600))
	_, err := dst.execute("import", foreign)
	assert.ErrorIs(t, err, app.ErrForeignBackup)
	assert.ErrorContains(t, err, "backup rejected, nothing was changed")
	assert.Contains(t, dst.mustExecute("profile", "show"), "Name: Exported")

	_, err = dst.execute("import", filepath.Join(dir, "nope.json"))
	assert.ErrorContains(t, err, "read backup")
}

func TestExport_DefaultFileName(t *testing.T) {
	c := newTestCLI(t)
	t.Chdir(t.TempDir())

	assert.Equal(t, "exported to athlete-pro-backup-2024-03-04.json\n", c.mustExecute("export"))
	assert.FileExists(t, "athlete-pro-backup-2024-03-04.json")
}

func TestReset(t *testing.T) {
	c := newTestCLI(t)
	c.mustExecute("profile", "set", "name=Gone")

	_, err := c.execute("reset")
	assert.EqualError(t, err, "this deletes all data permanently, confirm with --yes")
	assert.Contains(t, c.mustExecute("profile", "show"), "Name: Gone")

	assert.Equal(t, "all data removed\n", c.mustExecute("reset", "--yes"))
	assert.Equal(t, "all data removed\n", c.mustExecute("reset", "--yes"))
	assert.Contains(t, c.mustExecute("profile", "show"), "Name: Atleta Pro")

	keys, err := c.medium.Keys(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRun(t *testing.T) {
	c := newTestCLI(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.executeContext(ctx, "run")
	require.NoError(t, err)

	// state is flushed on shutdown
	keys, err := c.medium.Keys(context.Background(), "athletePro_")
	require.NoError(t, err)
	assert.Len(t, keys, 2+len(userdata.AllSeries()))
}
