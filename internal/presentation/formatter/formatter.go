// Package formatter renders the Batch-Out history for the terminal and for
// export files.
package formatter

import (
	"fmt"
	"io"
	"strings"
)

// Formatter writes history rows in one output format
type Formatter interface {
	Format(w io.Writer, rows []HistoryRow) error
	// Extension is the file extension used by export, without the dot
	Extension() string
}

// NewFormatter returns the formatter for table, csv, json, parquet or summary
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return NewTableFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "parquet":
		return NewParquetFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use: table, csv, json, parquet, summary)", format)
	}
}
