package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

var _ Medium = (*RedisMedium)(nil)

const redisScanCount = 100

type RedisParams struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisMedium stores each key as a plain redis string. Meant for a local
// redis instance, values are never expired.
type RedisMedium struct {
	client        *redis.Client
	maxValueBytes int
}

func NewRedisMedium(client *redis.Client, maxValueBytes int) *RedisMedium {
	return &RedisMedium{
		client:        client,
		maxValueBytes: maxValueBytes,
	}
}

// OpenRedis connects to redis and verifies the connection with a ping.
func OpenRedis(ctx context.Context, params RedisParams, maxValueBytes int) (*RedisMedium, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Host, params.Port),
		Password: params.Password,
		DB:       params.DB,
	})
	client.AddHook(redisotel.NewTracingHook())

	pingRes, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Debugf("redis ping: %s", pingRes)

	return NewRedisMedium(client, maxValueBytes), nil
}

func (r *RedisMedium) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisMedium) Set(ctx context.Context, key string, value []byte) error {
	if err := checkQuota(key, value, r.maxValueBytes); err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *RedisMedium) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *RedisMedium) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s*: %w", prefix, err)
	}
	return keys, nil
}

func (r *RedisMedium) Close() error {
	return r.client.Close()
}

func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}
