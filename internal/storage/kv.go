package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Keys under which student state is persisted.
const (
	KeyProfile   = "profile"
	KeyTasks     = "tasks"
	KeyLastJobID = "last_job_id"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var ErrNotFound = errors.New("key not found")

// KV is a minimal byte store. Get returns ErrNotFound for absent keys and
// Delete of an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
	Backend() string
}

type RedisOptions struct {
	Addr      string `mapstructure:"addr"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key-prefix"`
}

type Options struct {
	Backend    string       `mapstructure:"backend"`
	SQLitePath string       `mapstructure:"sqlite-path"`
	Redis      RedisOptions `mapstructure:"redis"`
}

// Open builds the KV selected by opts. dataDir holds file-backend data and
// the default sqlite database.
func Open(ctx context.Context, opts Options, dataDir string) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		kv, err = NewFileKV(dataDir)
	case BackendSQLite:
		kv, err = OpenSQLite(ctx, opts.SQLitePath, dataDir)
	case BackendRedis:
		kv, err = OpenRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}
