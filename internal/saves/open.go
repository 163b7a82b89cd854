package saves

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backends accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFS     = "fs"
)

// SQLiteFile is the database file name created under the save directory.
const SQLiteFile = "league.db"

// Open builds the store for backend rooted at dir. SQLite stores retry
// calls that hit a locked database.
func Open(ctx context.Context, backend, dir string, retention int) (Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save path is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, filepath.Join(dir, SQLiteFile), retention)
		if err != nil {
			return nil, err
		}
		return NewRetryingStore(db, nil, 0, 0), nil
	case BackendFS:
		return NewFSStore(dir, retention), nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", backend)
	}
}
