package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	driver string
	create string
	get    string
	upsert string
	delete string
}

var dialects = map[string]dialect{
	BackendSQLite: {
		driver: "sqlite",
		create: `CREATE TABLE IF NOT EXISTS layout_slots (
			slot TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		get: `SELECT data FROM layout_slots WHERE slot = ?`,
		upsert: `INSERT INTO layout_slots (slot, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		delete: `DELETE FROM layout_slots WHERE slot = ?`,
	},
	BackendMySQL: {
		driver: "mysql",
		create: `CREATE TABLE IF NOT EXISTS layout_slots (
			slot VARCHAR(191) PRIMARY KEY,
			data LONGBLOB NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		get: `SELECT data FROM layout_slots WHERE slot = ?`,
		upsert: `INSERT INTO layout_slots (slot, data, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = VALUES(updated_at)`,
		delete: `DELETE FROM layout_slots WHERE slot = ?`,
	},
	BackendPostgres: {
		driver: "postgres",
		create: `CREATE TABLE IF NOT EXISTS layout_slots (
			slot TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		get: `SELECT data FROM layout_slots WHERE slot = $1`,
		upsert: `INSERT INTO layout_slots (slot, data, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		delete: `DELETE FROM layout_slots WHERE slot = $1`,
	},
}

// SQLStore keeps slots in a layout_slots table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLStore opens backend (sqlite, mysql or postgres) at dsn and creates
// the slots table if needed. For sqlite the parent directory of the database
// file is created.
func NewSQLStore(ctx context.Context, backend, dsn string) (*SQLStore, error) {
	d, ok := dialects[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
	if dsn == "" {
		return nil, fmt.Errorf("open %s: empty dsn", backend)
	}
	if backend == BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", backend, err)
	}
	if backend == BackendSQLite {
		// SQLite only supports one writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	if _, err := db.ExecContext(ctx, d.create); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", backend, err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return data, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
