package saver

import (
	"github.com/parquet-go/parquet-go"

	"BoomDoomRadar/internal/model"
)

// ParquetSaver writes rows as a Parquet file with optional columns for the
// forecast, lifecycle and rolling range.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(series model.Series, path string) error {
	return parquet.WriteFile(path, Rows(series))
}
