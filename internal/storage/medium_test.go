package storage_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/2beens/athletepro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

// exerciseMedium runs the behaviour every medium must share.
func exerciseMedium(t *testing.T, medium storage.Medium) {
	t.Helper()
	ctx := context.Background()

	_, err := medium.Get(ctx, "athletePro_user")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, medium.Set(ctx, "athletePro_user", []byte(`{"name":"Atleta Pro"}`)))
	require.NoError(t, medium.Set(ctx, "athletePro_settings", []byte(`{"theme":"light"}`)))
	require.NoError(t, medium.Set(ctx, "athletePro_workouts", []byte(`[]`)))
	require.NoError(t, medium.Set(ctx, "other_app_key", []byte(`1`)))

	val, err := medium.Get(ctx, "athletePro_user")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Atleta Pro"}`, string(val))

	// overwrite
	require.NoError(t, medium.Set(ctx, "athletePro_user", []byte(`{"name":"Serj"}`)))
	val, err = medium.Get(ctx, "athletePro_user")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Serj"}`, string(val))

	keys, err := medium.Keys(ctx, "athletePro_")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"athletePro_settings", "athletePro_user", "athletePro_workouts"}, keys)

	require.NoError(t, medium.Delete(ctx, "athletePro_user"))
	require.NoError(t, medium.Delete(ctx, "athletePro_user"), "deleting a missing key is fine")
	_, err = medium.Get(ctx, "athletePro_user")
	require.ErrorIs(t, err, storage.ErrNotFound)

	keys, err = medium.Keys(ctx, "athletePro_")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestMemoryMedium(t *testing.T) {
	medium := storage.NewMemoryMedium(0)
	exerciseMedium(t, medium)
	require.NoError(t, medium.Close())
}

func TestMemoryMedium_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium(0)

	value := []byte(`[1,2]`)
	require.NoError(t, medium.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := medium.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))
}

func TestMemoryMedium_Quota(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium(4)

	require.NoError(t, medium.Set(ctx, "k", []byte("1234")))
	err := medium.Set(ctx, "k", []byte("12345"))
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)

	got, err := medium.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1234", string(got), "rejected write must not replace the old value")
}

func TestSqliteMedium(t *testing.T) {
	medium, err := storage.OpenSqlite(filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	defer medium.Close()

	exerciseMedium(t, medium)
}

func TestSqliteMedium_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	medium, err := storage.OpenSqlite(path, 0)
	require.NoError(t, err)
	require.NoError(t, medium.Set(ctx, "athletePro_cycle", []byte(`[{"compound":"test-e"}]`)))
	require.NoError(t, medium.Close())

	reopened, err := storage.OpenSqlite(path, 0)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "athletePro_cycle")
	require.NoError(t, err)
	assert.Equal(t, `[{"compound":"test-e"}]`, string(got))
}

func TestSqliteMedium_KeysPrefixIsExact(t *testing.T) {
	ctx := context.Background()
	medium, err := storage.OpenSqlite(filepath.Join(t.TempDir(), "test.db"), 0)
	require.NoError(t, err)
	defer medium.Close()

	require.NoError(t, medium.Set(ctx, "athletePro_user", []byte(`{}`)))
	require.NoError(t, medium.Set(ctx, "ATHLETEPRO_user", []byte(`{}`)))
	require.NoError(t, medium.Set(ctx, "athleteProXuser", []byte(`{}`)))

	keys, err := medium.Keys(ctx, "athletePro_")
	require.NoError(t, err)
	assert.Equal(t, []string{"athletePro_user"}, keys)
}

func TestSqliteMedium_Quota(t *testing.T) {
	medium, err := storage.OpenSqlite(filepath.Join(t.TempDir(), "test.db"), 8)
	require.NoError(t, err)
	defer medium.Close()

	err = medium.Set(context.Background(), "athletePro_workouts", []byte(`[{"too":"big"}]`))
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		medium, err := storage.Open(ctx, storage.OpenParams{Backend: storage.BackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &storage.MemoryMedium{}, medium)
		require.NoError(t, medium.Close())
	})

	t.Run("sqlite creates data dir and is cached", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "nested", "data")
		medium, err := storage.Open(ctx, storage.OpenParams{
			Backend:     storage.BackendSqlite,
			DataDir:     dataDir,
			CacheSizeMB: 1,
		})
		require.NoError(t, err)
		defer medium.Close()

		assert.IsType(t, &storage.CachedMedium{}, medium)
		assert.FileExists(t, filepath.Join(dataDir, storage.SqliteFileName))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := storage.Open(ctx, storage.OpenParams{Backend: "floppy"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage backend")
	})
}
