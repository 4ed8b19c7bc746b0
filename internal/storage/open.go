package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/2beens/athletepro/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	BackendSqlite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"

	SqliteFileName = "athletepro.db"
)

type OpenParams struct {
	Backend       string
	DataDir       string
	Redis         RedisParams
	CacheSizeMB   int
	MaxValueBytes int
}

// Open builds the configured medium, wrapped in a read cache when
// CacheSizeMB is positive.
func Open(ctx context.Context, params OpenParams) (Medium, error) {
	var (
		medium Medium
		err    error
	)

	switch strings.ToLower(params.Backend) {
	case "", BackendSqlite:
		medium, err = openSqliteInDir(params.DataDir, params.MaxValueBytes)
	case BackendRedis:
		medium, err = OpenRedis(ctx, params.Redis, params.MaxValueBytes)
	case BackendMemory:
		medium = NewMemoryMedium(params.MaxValueBytes)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", params.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("storage backend: %s", params.Backend)

	if params.CacheSizeMB > 0 {
		return NewCachedMedium(medium, params.CacheSizeMB), nil
	}
	return medium, nil
}

func openSqliteInDir(dataDir string, maxValueBytes int) (*SqliteMedium, error) {
	if dataDir == "" {
		dataDir = "."
	}

	exists, err := pkg.PathExists(dataDir, true)
	if err != nil {
		return nil, fmt.Errorf("check data dir: %w", err)
	}
	if !exists {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		log.Printf("created data dir: %s", dataDir)
	}

	return OpenSqlite(filepath.Join(dataDir, SqliteFileName), maxValueBytes)
}
