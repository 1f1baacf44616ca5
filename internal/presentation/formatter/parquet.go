package formatter

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// ParquetFormatter writes the history as a single parquet file
type ParquetFormatter struct{}

func NewParquetFormatter() *ParquetFormatter {
	return &ParquetFormatter{}
}

func (f *ParquetFormatter) Extension() string { return "parquet" }

func (f *ParquetFormatter) Format(w io.Writer, rows []HistoryRow) error {
	pw := parquet.NewGenericWriter[HistoryRow](w)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
