package database

import (
	"context"
	"fmt"

	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rs/zerolog/log"
)

// UpdateFunc receives the current value of a key (found is false when the key
// is absent) and returns the value to store.
type UpdateFunc func(current string, found bool) (string, error)

// KeyValueStore is the local storage the link collection lives in: string
// values under string keys, the same contract a browser's localStorage offers,
// plus an atomic read-modify-write.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	RemoveItem(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

type Options struct {
	Driver        string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MaxRetries    int
}

// Initialize opens the backend selected by opts.Driver.
func Initialize(ctx context.Context, opts Options) (KeyValueStore, error) {
	log.Info().Str("driver", opts.Driver).Str("path", opts.Path).Msg("Initializing local storage")

	var (
		store KeyValueStore
		err   error
	)
	switch opts.Driver {
	case "", constants.DriverMemory:
		store = NewMemoryStore()
	case constants.DriverFile:
		store, err = NewFileStore(opts.Path)
	case constants.DriverSQLite:
		store, err = NewSQLiteStore(opts.Path)
	case constants.DriverRedis:
		store = NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.MaxRetries)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("driver", store.Driver()).Msg("Local storage is not reachable yet")
	} else {
		log.Info().Str("driver", store.Driver()).Msg("Local storage ready")
	}

	return store, nil
}
