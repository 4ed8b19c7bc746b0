package app_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/internal/store"
	"github.com/2beens/athletepro/internal/telemetry/metrics"
	"github.com/2beens/athletepro/internal/userdata"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squatRecord() userdata.Record {
	r := userdata.NewWorkoutRecord(userdata.WorkoutSet{
		Timestamp: time.Date(2024, 3, 3, 18, 30, 0, 0, time.UTC),
		Exercise:  "squat",
		Sets:      5,
		Reps:      5,
		Load:      140,
	})
	r[userdata.FieldID] = "w-1"
	return r
}

func TestBackupFileName(t *testing.T) {
	assert.Equal(t, "athlete-pro-backup-2024-03-04.json", app.BackupFileName(testNow))
	local := time.Date(2024, 3, 4, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "athlete-pro-backup-2024-03-05.json", app.BackupFileName(local))
}

func TestApp_WriteBackup_Golden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.app.AppendRecord(ctx, userdata.SeriesWorkouts, squatRecord())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, env.app.WriteBackup(ctx, &buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", buf.Bytes())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CounterBackups.WithLabelValues("export", metrics.ResultOK)))
}

func TestApp_ExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestEnv(t)

	profile := userdata.DefaultUserProfile()
	profile.Name = "Round Trip"
	require.NoError(t, src.app.SaveProfile(ctx, profile))
	settings := userdata.DefaultSettings()
	settings.Theme = userdata.ThemeContrast
	settings.AutoSave = false
	require.NoError(t, src.app.SaveSettings(ctx, settings))
	_, err := src.app.AppendRecord(ctx, userdata.SeriesWorkouts, squatRecord())
	require.NoError(t, err)
	_, err = src.app.AppendRecord(ctx, userdata.SeriesBloodwork, userdata.NewBloodworkRecord(userdata.BloodworkMarker{
		Timestamp: testNow,
		Marker:    "hematocrit",
		Value:     48.5,
		Unit:      "%",
	}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.app.WriteBackup(ctx, &buf))

	dst := newTestEnv(t)
	_, err = dst.app.AppendRecord(ctx, userdata.SeriesNutrition, userdata.Record{"kcal": 3200.0})
	require.NoError(t, err)

	require.NoError(t, dst.app.Import(ctx, buf.Bytes()))

	assert.Equal(t, profile, dst.app.Profile())
	assert.Equal(t, settings, dst.app.Settings())
	for _, name := range userdata.AllSeries() {
		assert.Equal(t, src.app.Series(name), dst.app.Series(name), name)
	}
	assert.Empty(t, dst.app.Series(userdata.SeriesNutrition), "import replaces every series")

	// each key was persisted
	assert.Equal(t, profile, store.Load[userdata.UserProfile](ctx, dst.store, store.KeyUser))
	assert.Equal(t, src.app.Series(userdata.SeriesBloodwork),
		store.Load[[]userdata.Record](ctx, dst.store, store.SeriesKey(userdata.SeriesBloodwork)))
	assert.Equal(t, 1.0, testutil.ToFloat64(dst.metrics.CounterBackups.WithLabelValues("import", metrics.ResultOK)))
}

func TestApp_Import_PartialDocument(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	doc := `{
		"meta": {"app": "AthletePro", "version": "2.9.0", "exportDate": "2023-12-01T08:00:00Z", "dataVersion": 1},
		"user": {"name": "Old Export"},
		"settings": {"theme": "light"},
		"data": {"cycle": [{"compound": "test-e", "doseMg": 250}]}
	}`
	require.NoError(t, env.app.Import(ctx, []byte(doc)))

	profile := env.app.Profile()
	assert.Equal(t, "Old Export", profile.Name)
	assert.Equal(t, 92.0, profile.Bodyweight)
	assert.Equal(t, userdata.ThemeLight, env.app.Settings().Theme)
	assert.True(t, env.app.Settings().AutoSave)
	assert.Len(t, env.app.Series(userdata.SeriesCycle), 1)
	assert.Empty(t, env.app.Series(userdata.SeriesWorkouts))
	assert.NotNil(t, env.app.Series(userdata.SeriesWorkouts))
}

func TestApp_Import_Rejected(t *testing.T) {
	const validMeta = `"meta": {"app": "AthletePro", "version": "3.0.0", "exportDate": "2024-03-04T10:00:00Z", "dataVersion": 1}`

	testCases := []struct {
		name    string
		doc     string
		wantErr error
		errText string
	}{
		{
			name:    "not json",
			doc:     `athlete pro backup`,
			wantErr: app.ErrInvalidBackup,
		},
		{
			name:    "missing data",
			doc:     `{` + validMeta + `, "user": {}, "settings": {}}`,
			wantErr: app.ErrInvalidBackup,
			errText: "data",
		},
		{
			name:    "missing meta",
			doc:     `{"user": {}, "settings": {}, "data": {}}`,
			wantErr: app.ErrInvalidBackup,
			errText: "meta",
		},
		{
			name:    "unknown series",
			doc:     `{` + validMeta + `, "user": {}, "settings": {}, "data": {"steroids": []}}`,
			wantErr: app.ErrInvalidBackup,
		},
		{
			name:    "series is not a list",
			doc:     `{` + validMeta + `, "user": {}, "settings": {}, "data": {"workouts": {"a": 1}}}`,
			wantErr: app.ErrInvalidBackup,
		},
		{
			name:    "wrong field type",
			doc:     `{` + validMeta + `, "user": {"bodyweight": "heavy"}, "settings": {}, "data": {}}`,
			wantErr: app.ErrInvalidBackup,
		},
		{
			name: "foreign app",
			doc: `{"meta": {"app": "GymStats", "version": "1.0.0", "exportDate": "2024-03-04T10:00:00Z", "dataVersion": 1},
				"user": {}, "settings": {}, "data": {}}`,
			wantErr: app.ErrForeignBackup,
			errText: `"GymStats"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)

			profile := userdata.DefaultUserProfile()
			profile.Name = "Untouched"
			require.NoError(t, env.app.SaveProfile(ctx, profile))
			keysBefore := env.store.Keys(ctx)

			err := env.app.Import(ctx, []byte(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.errText != "" {
				assert.True(t, strings.Contains(err.Error(), tc.errText), err.Error())
			}

			// nothing applied
			assert.Equal(t, profile, env.app.Profile())
			assert.Equal(t, keysBefore, env.store.Keys(ctx))
			assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CounterBackups.WithLabelValues("import", metrics.ResultFailed)))
		})
	}
}
