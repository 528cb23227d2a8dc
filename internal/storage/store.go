package storage

import (
	"context"

	"strider/internal/model"
)

// Store defines whole-snapshot persistence for run checkpoints and seed
// pools. Lookups report absence with the bool result; errors are reserved
// for real failures.
type Store interface {
	Init(ctx context.Context) error
	SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error
	GetCheckpoint(ctx context.Context, strategy string) (model.Checkpoint, bool, error)
	SaveSeedPool(ctx context.Context, pool model.SeedPool) error
	GetSeedPool(ctx context.Context, strategy string, popSize int) (model.SeedPool, bool, error)
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
