package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// SummaryFormatter prints totals over the whole history instead of rows.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Extension() string { return "txt" }

// Format writes event count, dispensed volume and the newest and oldest events.
func (f *SummaryFormatter) Format(w io.Writer, rows []HistoryRow) error {
	var totalVolume float64
	tanks := make(map[string]int)
	for _, row := range rows {
		if v, ok := util.ParseNumeric(row.Volume); ok {
			totalVolume += v
		}
		tanks[row.TankName]++
	}

	var b strings.Builder
	b.WriteString("Batch-Out Summary\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "%-20s %d\n", "Events:", len(rows))
	fmt.Fprintf(&b, "%-20s %.2f L\n", "Volume recorded:", totalVolume)
	fmt.Fprintf(&b, "%-20s %d\n", "Tanks:", len(tanks))

	if len(rows) > 0 {
		fmt.Fprintf(&b, "%-20s %s\n", "Latest event:", rows[0].Order)
		fmt.Fprintf(&b, "%-20s %s\n", "Oldest event:", rows[len(rows)-1].Order)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
