// Package store persists layout documents under named slots.
//
// A slot is a single key holding one serialized document; Set replaces any
// previous value. Backends share the Store interface:
//
//   - [MemoryStore]: process-local map, for tests and throwaway sessions
//   - [FileStore]: one JSON file per slot in a directory (the default)
//   - [SQLStore]: a slots table in SQLite, MySQL or PostgreSQL
//   - [RedisStore]: one Redis string key per slot
//   - [MongoStore]: one document per slot in a MongoDB collection
//
// Use [Open] to build a backend from a [Config].
package store

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnsupportedBackend is returned by Open for an unknown backend name.
	ErrUnsupportedBackend = errors.New("unsupported store backend")

	// ErrInvalidKey is returned for empty slot keys.
	ErrInvalidKey = errors.New("invalid slot key")
)

// Store reads and writes slot values.
type Store interface {
	// Get returns the value for key. A missing key reports ok=false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key, replacing any prior value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Config selects and parameterizes a backend. Only the fields relevant to
// Backend are read.
type Config struct {
	Backend string

	// Dir is the slot directory for the file backend.
	Dir string

	// DSN is the data source name for sqlite, mysql and postgres.
	DSN string

	// Addr, Password and DB configure the redis backend.
	Addr     string
	Password string
	DB       int

	// URI, Database and Collection configure the mongo backend.
	URI        string
	Database   string
	Collection string

	// Prefix is prepended to every key by the redis backend.
	Prefix string
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		s, err = orNil(NewFileStore(cfg.Dir))
	case BackendSQLite, BackendMySQL, BackendPostgres:
		s, err = orNil(NewSQLStore(ctx, cfg.Backend, cfg.DSN))
	case BackendRedis:
		s, err = orNil(NewRedisStore(ctx, cfg.Addr, cfg.Password, cfg.DB, cfg.Prefix))
	case BackendMongo:
		s, err = orNil(NewMongoStore(ctx, cfg.URI, cfg.Database, cfg.Collection))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// orNil keeps a failed constructor from producing a non-nil Store holding a
// nil pointer.
func orNil[T Store](s T, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func checkKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}
