package formatter

import (
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Extension() string { return "json" }

func (f *JSONFormatter) Format(w io.Writer, rows []HistoryRow) error {
	if rows == nil {
		rows = []HistoryRow{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
