package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/2beens/athletepro/internal/storage"
	"github.com/2beens/athletepro/internal/telemetry/metrics"
	"github.com/2beens/athletepro/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Store struct {
	medium  storage.Medium
	prefix  string
	metrics *metrics.Manager
}

func New(medium storage.Medium, prefix string, metricsManager *metrics.Manager) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if metricsManager == nil {
		metricsManager = metrics.NewTestManager()
	}
	return &Store{
		medium:  medium,
		prefix:  prefix,
		metrics: metricsManager,
	}
}

func (s *Store) Prefix() string {
	return s.prefix
}

func (s *Store) mediumKey(key Key) string {
	return s.prefix + string(key)
}

func (s *Store) observe(op string, start time.Time) {
	s.metrics.HistStoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Load returns the value stored under key, or the key's default when the
// value is missing, unreadable or malformed. It never fails.
func Load[T any](ctx context.Context, s *Store, key Key) T {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.load")
	defer span.End()
	span.SetAttributes(attribute.String("key", string(key)))
	defer s.observe("load", time.Now())

	value := defaultFor[T](key)

	raw, err := s.medium.Get(ctx, s.mediumKey(key))
	if errors.Is(err, storage.ErrNotFound) {
		s.metrics.CounterStoreLoads.WithLabelValues(string(key), metrics.ResultMissing).Inc()
		return value
	}
	if err != nil {
		log.Errorf("store load [%s]: %s", key, err)
		span.RecordError(err)
		s.metrics.CounterStoreLoads.WithLabelValues(string(key), metrics.ResultFailed).Inc()
		return value
	}

	if err := json.Unmarshal(raw, &value); err != nil || isNilSlice(value) {
		if err == nil {
			err = errors.New("null series")
		}
		log.Errorf("store load [%s], malformed value, using default: %s", key, err)
		span.RecordError(err)
		s.metrics.CounterStoreLoads.WithLabelValues(string(key), metrics.ResultMalformed).Inc()
		return defaultFor[T](key)
	}

	s.metrics.CounterStoreLoads.WithLabelValues(string(key), metrics.ResultOK).Inc()
	return value
}

// Save serializes value under key. Returns false when the value cannot be
// encoded or the medium rejects the write.
func Save[T any](ctx context.Context, s *Store, key Key, value T) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.save")
	defer span.End()
	span.SetAttributes(attribute.String("key", string(key)))
	defer s.observe("save", time.Now())

	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("store save [%s], marshal: %s", key, err)
		span.RecordError(err)
		s.metrics.CounterStoreSaves.WithLabelValues(string(key), metrics.ResultFailed).Inc()
		return false
	}

	if err := s.medium.Set(ctx, s.mediumKey(key), raw); err != nil {
		log.Errorf("store save [%s]: %s", key, err)
		span.RecordError(err)
		s.metrics.CounterStoreSaves.WithLabelValues(string(key), metrics.ResultFailed).Inc()
		return false
	}

	s.metrics.CounterStoreSaves.WithLabelValues(string(key), metrics.ResultOK).Inc()
	return true
}

func (s *Store) Remove(ctx context.Context, key Key) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.remove")
	defer span.End()
	defer s.observe("remove", time.Now())

	if err := s.medium.Delete(ctx, s.mediumKey(key)); err != nil {
		log.Errorf("store remove [%s]: %s", key, err)
		span.RecordError(err)
		return false
	}
	return true
}

func (s *Store) Has(ctx context.Context, key Key) bool {
	_, err := s.medium.Get(ctx, s.mediumKey(key))
	return err == nil
}

// Keys lists the stored keys under the prefix, prefix stripped.
func (s *Store) Keys(ctx context.Context) []Key {
	mediumKeys, err := s.medium.Keys(ctx, s.prefix)
	if err != nil {
		log.Errorf("store list keys: %s", err)
		return nil
	}
	keys := make([]Key, 0, len(mediumKeys))
	for _, mk := range mediumKeys {
		keys = append(keys, Key(strings.TrimPrefix(mk, s.prefix)))
	}
	return keys
}

// Clear removes every key under the prefix. Keys outside the namespace are
// left alone. Returns false if any key could not be listed or removed; the
// remaining keys are still attempted.
func (s *Store) Clear(ctx context.Context) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.clear")
	defer span.End()
	defer s.observe("clear", time.Now())

	mediumKeys, err := s.medium.Keys(ctx, s.prefix)
	if err != nil {
		log.Errorf("store clear, list keys: %s", err)
		span.RecordError(err)
		return false
	}

	ok := true
	for _, mk := range mediumKeys {
		if err := s.medium.Delete(ctx, mk); err != nil {
			log.Errorf("store clear [%s]: %s", mk, err)
			ok = false
		}
	}
	span.SetAttributes(attribute.Int("removed", len(mediumKeys)))
	return ok
}

func isNilSlice(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}
