package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{headers: HistoryHeaders}
}

func (f *TableFormatter) Extension() string { return "txt" }

func (f *TableFormatter) Format(w io.Writer, rows []HistoryRow) error {
	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	return RenderTable(w, f.headers, values, historyRightAligned)
}

// RenderLiveTable draws the current snapshot
func RenderLiveTable(w io.Writer, rows []LiveRow) error {
	values := make([][]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	return RenderTable(w, LiveHeaders, values, liveRightAligned)
}

// RenderTable draws a box table. Widths are measured in terminal cells so
// wide runes stay aligned.
func RenderTable(w io.Writer, headers []string, rows [][]string, rightAligned map[int]bool) error {
	widths := calculateColumnWidths(headers, rows)

	var b strings.Builder
	writeBorder(&b, widths, "top")
	writeRow(&b, headers, widths, nil)
	writeBorder(&b, widths, "middle")
	if len(rows) == 0 {
		total := len(widths)*3 - 1
		for _, width := range widths {
			total += width
		}
		b.WriteString("│")
		b.WriteString(util.PadRight(" No records", total))
		b.WriteString("│\n")
	}
	for _, row := range rows {
		writeRow(&b, row, widths, rightAligned)
	}
	writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

// calculateColumnWidths determines the width of each column from its content
func calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if i >= len(widths) {
				break
			}
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeBorder writes table borders (top, middle, bottom)
func writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

func writeRow(b *strings.Builder, values []string, widths []int, rightAligned map[int]bool) {
	b.WriteString("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if rightAligned[i] {
			fmt.Fprintf(b, " %s │", padLeft(value, width))
		} else {
			fmt.Fprintf(b, " %s │", util.PadRight(value, width))
		}
	}
	b.WriteString("\n")
}

func padLeft(text string, width int) string {
	w := util.GetDisplayWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", width-w) + text
}
