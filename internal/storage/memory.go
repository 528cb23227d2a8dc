package storage

import (
	"context"
	"fmt"
	"sync"

	"strider/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	checkpoints map[string]model.Checkpoint
	seedPools   map[string]model.SeedPool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.checkpoints = make(map[string]model.Checkpoint)
	s.seedPools = make(map[string]model.SeedPool)
	return nil
}

func (s *MemoryStore) SaveCheckpoint(_ context.Context, cp model.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("store is not initialized")
	}
	s.checkpoints[cp.Name] = cp
	return nil
}

func (s *MemoryStore) GetCheckpoint(_ context.Context, strategy string) (model.Checkpoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.Checkpoint{}, false, fmt.Errorf("store is not initialized")
	}
	cp, ok := s.checkpoints[strategy]
	return cp, ok, nil
}

func (s *MemoryStore) SaveSeedPool(_ context.Context, pool model.SeedPool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("store is not initialized")
	}
	s.seedPools[seedPoolKey(pool.Strategy, pool.PopSize)] = pool
	return nil
}

func (s *MemoryStore) GetSeedPool(_ context.Context, strategy string, popSize int) (model.SeedPool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return model.SeedPool{}, false, fmt.Errorf("store is not initialized")
	}
	pool, ok := s.seedPools[seedPoolKey(strategy, popSize)]
	return pool, ok, nil
}

func seedPoolKey(strategy string, popSize int) string {
	return fmt.Sprintf("%s/%d", strategy, popSize)
}
