package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"strider/internal/model"
	"strider/internal/workspace"
)

const checkpointFile = "progress.json"

// FileStore keeps one checkpoint file per strategy and one seed-pool file
// per (strategy, population size), namespaced through the workspace
// resolver. Writes replace the whole file; there is no partial format.
type FileStore struct {
	ws *workspace.Workspace
}

func NewFileStore(ws *workspace.Workspace) *FileStore {
	return &FileStore{ws: ws}
}

func (s *FileStore) Init(_ context.Context) error {
	if s.ws == nil {
		return errors.New("workspace is required")
	}
	return nil
}

func (s *FileStore) SaveCheckpoint(_ context.Context, cp model.Checkpoint) error {
	if cp.Name == "" {
		return errors.New("checkpoint name is required")
	}
	dir, err := s.ws.Resolve(cp.Name, workspace.CategoryProgress)
	if err != nil {
		return err
	}
	payload, err := EncodeCheckpoint(cp)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, checkpointFile), payload, 0o644)
}

func (s *FileStore) GetCheckpoint(_ context.Context, strategy string) (model.Checkpoint, bool, error) {
	dir, err := s.ws.Resolve(strategy, workspace.CategoryProgress)
	if err != nil {
		return model.Checkpoint{}, false, err
	}
	path := filepath.Join(dir, checkpointFile)
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Checkpoint{}, false, nil
		}
		return model.Checkpoint{}, false, err
	}
	cp, err := DecodeCheckpoint(payload)
	if err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return cp, true, nil
}

func (s *FileStore) SaveSeedPool(_ context.Context, pool model.SeedPool) error {
	if pool.Strategy == "" {
		return errors.New("seed pool strategy is required")
	}
	dir, err := s.ws.Resolve(pool.Strategy, workspace.CategorySeeds)
	if err != nil {
		return err
	}
	payload, err := EncodeSeedPool(pool)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, seedPoolFile(pool.PopSize)), payload, 0o644)
}

func (s *FileStore) GetSeedPool(_ context.Context, strategy string, popSize int) (model.SeedPool, bool, error) {
	dir, err := s.ws.Resolve(strategy, workspace.CategorySeeds)
	if err != nil {
		return model.SeedPool{}, false, err
	}
	path := filepath.Join(dir, seedPoolFile(popSize))
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.SeedPool{}, false, nil
		}
		return model.SeedPool{}, false, err
	}
	pool, err := DecodeSeedPool(payload)
	if err != nil {
		return model.SeedPool{}, false, fmt.Errorf("decode seed pool %s: %w", path, err)
	}
	return pool, true, nil
}

func seedPoolFile(popSize int) string {
	return fmt.Sprintf("seed_%d.json", popSize)
}
