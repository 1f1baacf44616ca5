package formatter

import (
	"fmt"
	"strconv"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/core/volume"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// DefaultPageSize matches the history table of the dashboard
const DefaultPageSize = 10

// BuildHistoryRows maps a newest-first history into rows. Row numbers count
// down so the oldest event is always number 1.
func BuildHistoryRows(history model.HistoryLog) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for i, record := range history {
		rowNumber := len(history) - i
		rows = append(rows, HistoryRow{
			No:          rowNumber,
			Order:       util.FormatOrderLabel(rowNumber, record.String(model.FieldTimeStamp)),
			OrderDate:   formatDateField(record, model.FieldOrderDate),
			TankName:    util.FormatValue(record.Value(model.FieldTankName)),
			TankHigh:    util.FormatValue(record.Value(model.FieldTankHigh)),
			Level:       formatLevel(record.LevelValue()),
			SignalLow:   util.FormatValue(record.Value(model.FieldSignalLow)),
			SignalHigh:  util.FormatValue(record.Value(model.FieldSignalHigh)),
			Current:     util.FormatFixed3(record.Value(model.FieldSignalCurrent)),
			OrderNumber: rowNumber,
			Volume:      util.FormatVolume(volume.Derive(record)),
			Station:     util.FormatValue(record.Value(model.FieldStation)),
		})
	}
	return rows
}

// BuildLiveRows maps the current snapshot in arrival order
func BuildLiveRows(records []model.TankRecord) []LiveRow {
	rows := make([]LiveRow, 0, len(records))
	for i, record := range records {
		recordedAt := record.String(model.FieldTimeStamp)
		rows = append(rows, LiveRow{
			No:            i + 1,
			TankName:      util.FormatValue(record.Value(model.FieldTankName)),
			Volume:        fmt.Sprintf("%.2f", volume.Derive(record)),
			Percent:       formatPercent(record.Value(model.FieldPercent)),
			SignalLow:     util.FormatValue(record.Value(model.FieldSignalLow)),
			SignalHigh:    util.FormatValue(record.Value(model.FieldSignalHigh)),
			SignalCurrent: util.FormatFixed3(record.Value(model.FieldSignalCurrent)),
			TankHigh:      util.FormatValue(record.Value(model.FieldTankHigh)),
			FlowRate:      util.FormatValue(record.Value(model.FieldFlowRate)),
			RecordedAt:    formatDateOrPlaceholder(recordedAt),
		})
	}
	return rows
}

// Paginate returns the rows of one page together with the page actually
// shown (clamped into range) and the page count, which is never below 1.
func Paginate[T any](rows []T, page, perPage int) ([]T, int, int) {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	page, totalPages := ClampPage(page, len(rows), perPage)

	start := (page - 1) * perPage
	if start >= len(rows) {
		return []T{}, page, totalPages
	}
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], page, totalPages
}

// ClampPage clamps page into 1..totalPages for total rows
func ClampPage(page, total, perPage int) (int, int) {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// formatLevel shows the raw level: numbers as-is, unparseable values verbatim
func formatLevel(v interface{}) string {
	if v == nil {
		return util.Placeholder
	}
	if f, ok := util.ParseNumeric(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return util.FormatValue(v)
}

func formatPercent(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f%%", f)
	}
	return util.FormatValue(v)
}

func formatDateField(record model.TankRecord, field string) string {
	return formatDateOrPlaceholder(record.String(field))
}

func formatDateOrPlaceholder(value string) string {
	if value == "" {
		return util.Placeholder
	}
	return util.FormatDate(value)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
