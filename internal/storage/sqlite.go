//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"strider/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if cp.Name == "" {
		return errors.New("checkpoint name is required")
	}

	payload, err := EncodeCheckpoint(cp)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO checkpoints (strategy, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(strategy) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, cp.Name, cp.SchemaVersion, cp.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetCheckpoint(ctx context.Context, strategy string) (model.Checkpoint, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Checkpoint{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM checkpoints WHERE strategy = ?`, strategy).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Checkpoint{}, false, nil
		}
		return model.Checkpoint{}, false, err
	}

	cp, err := DecodeCheckpoint(payload)
	if err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("decode checkpoint %s: %w", strategy, err)
	}
	return cp, true, nil
}

func (s *SQLiteStore) SaveSeedPool(ctx context.Context, pool model.SeedPool) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if pool.Strategy == "" {
		return errors.New("seed pool strategy is required")
	}

	payload, err := EncodeSeedPool(pool)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO seed_pools (strategy, pop_size, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(strategy, pop_size) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, pool.Strategy, pool.PopSize, pool.SchemaVersion, pool.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetSeedPool(ctx context.Context, strategy string, popSize int) (model.SeedPool, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SeedPool{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM seed_pools WHERE strategy = ? AND pop_size = ?`, strategy, popSize).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SeedPool{}, false, nil
		}
		return model.SeedPool{}, false, err
	}

	pool, err := DecodeSeedPool(payload)
	if err != nil {
		return model.SeedPool{}, false, fmt.Errorf("decode seed pool %s/%d: %w", strategy, popSize, err)
	}
	return pool, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS checkpoints (
			strategy TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS seed_pools (
			strategy TEXT NOT NULL,
			pop_size INTEGER NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (strategy, pop_size)
		);
	`)
	return err
}
