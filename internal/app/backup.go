package app

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/2beens/athletepro/internal/telemetry/metrics"
	"github.com/2beens/athletepro/internal/telemetry/tracing"
	"github.com/2beens/athletepro/internal/userdata"

	log "github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

const (
	AppName          = "AthletePro"
	AppVersion       = "3.0.0"
	DataVersion      = 1
	backupFilePrefix = "athlete-pro-backup-"
)

var (
	ErrInvalidBackup = errors.New("invalid backup")
	ErrForeignBackup = errors.New("backup was not made by " + AppName)
)

//go:embed backup_schema.json
var backupSchemaJSON []byte

var (
	backupSchemaOnce sync.Once
	backupSchema     *gojsonschema.Schema
	backupSchemaErr  error
)

func loadBackupSchema() (*gojsonschema.Schema, error) {
	backupSchemaOnce.Do(func() {
		backupSchema, backupSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(backupSchemaJSON))
	})
	return backupSchema, backupSchemaErr
}

type BackupMeta struct {
	App         string `json:"app"`
	Version     string `json:"version"`
	ExportDate  string `json:"exportDate"`
	DataVersion int    `json:"dataVersion"`
}

type Backup struct {
	Meta     BackupMeta           `json:"meta"`
	User     userdata.UserProfile `json:"user"`
	Settings userdata.Settings    `json:"settings"`
	Data     userdata.Data        `json:"data"`
}

// BackupFileName is athlete-pro-backup-YYYY-MM-DD.json for the UTC date of t.
func BackupFileName(t time.Time) string {
	return backupFilePrefix + t.UTC().Format(time.DateOnly) + ".json"
}

// Export snapshots the whole state into a backup document.
func (a *App) Export(ctx context.Context) *Backup {
	_, span := tracing.GlobalTracer.Start(ctx, "app.export")
	defer span.End()

	a.mutex.Lock()
	defer a.mutex.Unlock()

	data := userdata.NewData()
	for name, records := range a.data {
		data[name] = append(data[name], records...)
	}

	a.metrics.CounterBackups.WithLabelValues("export", metrics.ResultOK).Inc()
	return &Backup{
		Meta: BackupMeta{
			App:         AppName,
			Version:     AppVersion,
			ExportDate:  a.now().UTC().Format(time.RFC3339),
			DataVersion: DataVersion,
		},
		User:     a.profile,
		Settings: a.settings,
		Data:     data,
	}
}

// WriteBackup writes the export document as indented JSON.
func (a *App) WriteBackup(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.Export(ctx)); err != nil {
		a.metrics.CounterBackups.WithLabelValues("export", metrics.ResultFailed).Inc()
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Import validates raw as a backup made by this app and, only if it is
// valid, replaces profile, settings and every series, saving each key.
// Series missing from the backup become empty.
func (a *App) Import(ctx context.Context, raw []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "app.import")
	defer func() {
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultFailed
		}
		a.metrics.CounterBackups.WithLabelValues("import", result).Inc()
		tracing.EndSpanWithErrCheck(span, err)
	}()

	backup, err := parseBackup(raw)
	if err != nil {
		return err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.profile = backup.User
	a.settings = backup.Settings
	a.data = userdata.NewData()
	for name, records := range backup.Data {
		if records != nil {
			a.data[name] = records
		}
	}
	a.refreshStatsLocked()

	if err := a.saveAllLocked(ctx); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	log.Infof("imported backup from %s (version %s)", backup.Meta.ExportDate, backup.Meta.Version)
	return nil
}

func parseBackup(raw []byte) (*Backup, error) {
	schema, err := loadBackupSchema()
	if err != nil {
		return nil, fmt.Errorf("load backup schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// not JSON at all
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackup, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackup, strings.Join(errs, "; "))
	}

	backup := &Backup{
		User:     userdata.DefaultUserProfile(),
		Settings: userdata.DefaultSettings(),
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(backup); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackup, err)
	}

	if backup.Meta.App != AppName {
		return nil, fmt.Errorf("%w: app is %q", ErrForeignBackup, backup.Meta.App)
	}
	return backup, nil
}
