package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads {Dir}/{symbol}.csv from local disk.
type FileSource struct {
	Dir      string
	MaxBytes int64
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir, MaxBytes: DefaultMaxPayload}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context, symbol string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(symbol, err)
	}
	path := filepath.Join(s.Dir, filepath.Base(symbol)+".csv")
	info, err := os.Stat(path)
	if err != nil {
		return nil, unavailable(symbol, fmt.Errorf("read csv: %w", err))
	}
	if limit := maxPayload(s.MaxBytes); info.Size() > limit {
		return nil, unavailable(symbol, fmt.Errorf("read csv: %s is larger than %d bytes", path, limit))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable(symbol, fmt.Errorf("read csv: %w", err))
	}
	return data, nil
}
