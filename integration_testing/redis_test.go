package integration_testing

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/athletepro/internal/app"
	"github.com/2beens/athletepro/internal/storage"
	"github.com/2beens/athletepro/internal/store"
	"github.com/2beens/athletepro/internal/telemetry/metrics"
	"github.com/2beens/athletepro/internal/userdata"
	testingpkg "github.com/2beens/athletepro/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	suite    *Suite
	suiteErr error
	testNow  = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
)

func TestMain(m *testing.M) {
	suite, suiteErr = newSuite()
	code := m.Run()
	if suite != nil {
		suite.cleanup()
	}
	os.Exit(code)
}

func requireSuite(t *testing.T) *Suite {
	t.Helper()
	if suiteErr != nil {
		t.Skipf("docker not available: %s", suiteErr)
	}
	return suite
}

func openRedisApp(t *testing.T, namespace string) (*app.App, storage.Medium) {
	t.Helper()
	s := requireSuite(t)

	medium, err := storage.Open(context.Background(), storage.OpenParams{
		Backend: storage.BackendRedis,
		Redis: storage.RedisParams{
			Host: "localhost",
			Port: s.RedisPort,
		},
		CacheSizeMB: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, medium.Close())
	})

	return newApp(medium, namespace), medium
}

func newApp(medium storage.Medium, namespace string) *app.App {
	m := metrics.NewTestManager()
	return app.New(context.Background(), app.Params{
		Store:   store.New(medium, namespace, m),
		Metrics: m,
		Now:     func() time.Time { return testNow },
	})
}

func testNamespace(t *testing.T) string {
	return fmt.Sprintf("it_%s_%d_", t.Name(), time.Now().UnixNano())
}

func TestRedisBackend_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	namespace := testNamespace(t)

	first, _ := openRedisApp(t, namespace)
	profile := first.Profile()
	profile.Name = "Redis Athlete"
	profile.Bodyweight = 101.5
	require.NoError(t, first.SaveProfile(ctx, profile))

	record, err := first.AppendRecord(ctx, userdata.SeriesWorkouts, userdata.Record{
		"exercise": "bench",
		"sets":     3.0,
		"reps":     8.0,
		"load":     100.0,
	})
	require.NoError(t, err)

	second, _ := openRedisApp(t, namespace)
	assert.Equal(t, profile, second.Profile())
	assert.Equal(t, userdata.DefaultSettings(), second.Settings())
	workouts := second.Series(userdata.SeriesWorkouts)
	require.Len(t, workouts, 1)
	assert.Equal(t, record, workouts[0])
}

func TestRedisBackend_ResetKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	namespace := testNamespace(t)

	a, _ := openRedisApp(t, namespace)
	require.NoError(t, a.SaveAll(ctx))

	redisCtx, rdb := testingpkg.GetRedisClientAndCtx(t, requireSuite(t).RedisPort)
	foreignKey := "other-app:" + namespace
	require.NoError(t, rdb.Set(redisCtx, foreignKey, "keep me", 0).Err())

	keys, err := rdb.Keys(redisCtx, namespace+"*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 2+len(userdata.AllSeries()))

	require.NoError(t, a.Reset(ctx))
	require.NoError(t, a.Reset(ctx))

	keys, err = rdb.Keys(redisCtx, namespace+"*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)

	val, err := rdb.Get(redisCtx, foreignKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "keep me", val)
	require.NoError(t, rdb.Del(redisCtx, foreignKey).Err())
}

func TestRedisBackend_ImportSqliteBackup(t *testing.T) {
	ctx := context.Background()
	requireSuite(t)

	sqlite, err := storage.OpenSqlite(filepath.Join(t.TempDir(), storage.SqliteFileName), 0)
	require.NoError(t, err)
	defer sqlite.Close()

	src := newApp(sqlite, "athletePro_")
	settings := src.Settings()
	settings.Units = userdata.UnitsImperial
	require.NoError(t, src.SaveSettings(ctx, settings))
	_, err = src.AppendRecord(ctx, userdata.SeriesBloodwork, userdata.Record{
		"marker": "hematocrit",
		"value":  49.0,
		"unit":   "%",
	})
	require.NoError(t, err)

	var backup bytes.Buffer
	require.NoError(t, src.WriteBackup(ctx, &backup))

	dst, _ := openRedisApp(t, testNamespace(t))
	require.NoError(t, dst.Import(ctx, backup.Bytes()))

	assert.Equal(t, src.Export(ctx), dst.Export(ctx))
	assert.Equal(t, userdata.UnitsImperial, dst.Settings().Units)
}
