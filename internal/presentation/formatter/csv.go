package formatter

import (
	"encoding/csv"
	"io"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Extension() string { return "csv" }

func (f *CSVFormatter) Format(w io.Writer, rows []HistoryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(HistoryHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
