package storage

import (
	"fmt"

	"strider/internal/workspace"
)

func NewStore(kind string, ws *workspace.Workspace, sqlitePath string) (Store, error) {
	switch kind {
	case "", "file":
		if ws == nil {
			return nil, fmt.Errorf("file store requires a workspace")
		}
		return NewFileStore(ws), nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}
