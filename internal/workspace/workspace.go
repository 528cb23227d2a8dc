package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Category names the purpose of an artifact directory within a strategy's
// namespace.
type Category string

const (
	CategoryProgress Category = "progress"
	CategorySeeds    Category = "population_seeds"
	CategoryResults  Category = "results"
	CategoryFigures  Category = "figures"
)

// Workspace resolves per-strategy, per-category artifact directories under a
// single root, creating them on first use.
type Workspace struct {
	root string
}

func New(root string) (*Workspace, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	return &Workspace{root: root}, nil
}

func (w *Workspace) Root() string { return w.root }

// Resolve returns the directory for the given strategy and category,
// guaranteeing it exists.
func (w *Workspace) Resolve(strategy string, category Category) (string, error) {
	if strategy == "" {
		return "", fmt.Errorf("strategy name is required")
	}
	switch category {
	case CategoryProgress, CategorySeeds, CategoryResults, CategoryFigures:
	default:
		return "", fmt.Errorf("unsupported workspace category: %s", category)
	}

	dir := filepath.Join(w.root, strategy, string(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace dir %s: %w", dir, err)
	}
	return dir, nil
}
