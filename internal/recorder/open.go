package recorder

import (
	"fmt"
	"os"
	"path/filepath"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Open returns the recorder for driver. SQLite parent directories are created.
func Open(driver, sqlitePath, postgresDSN string) (Recorder, error) {
	switch driver {
	case DriverNone:
		return NewNoopRecorder(), nil
	case DriverPostgres:
		return NewPostgresRecorder(postgresDSN)
	case DriverSQLite, "":
		if dir := filepath.Dir(sqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		return NewSQLiteRecorder(sqlitePath)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
