package formatter

// HistoryHeaders are the column titles of the Batch-Out history table and exports
var HistoryHeaders = []string{
	"No.", "Order", "Order date", "Tank name", "Tank High", "Level (cm)",
	"Signal Low", "Signal High", "Current", "Order number", "Volume (L)", "Station",
}

// LiveHeaders are the column titles of the live snapshot table
var LiveHeaders = []string{
	"No.", "Tank name", "Volume (L)", "Percent", "Signal Low", "Signal High",
	"Signal Current", "Tank High", "Flow rate", "Recorded at",
}

// HistoryRow is one display/export row of the history, already formatted
type HistoryRow struct {
	No          int    `json:"no" parquet:"no"`
	Order       string `json:"order" parquet:"order"`
	OrderDate   string `json:"order_date" parquet:"order_date"`
	TankName    string `json:"tank_name" parquet:"tank_name"`
	TankHigh    string `json:"tank_high" parquet:"tank_high"`
	Level       string `json:"level_cm" parquet:"level_cm"`
	SignalLow   string `json:"signal_low" parquet:"signal_low"`
	SignalHigh  string `json:"signal_high" parquet:"signal_high"`
	Current     string `json:"current" parquet:"current"`
	OrderNumber int    `json:"order_number" parquet:"order_number"`
	Volume      string `json:"volume_l" parquet:"volume_l"`
	Station     string `json:"station" parquet:"station"`
}

// Values returns the row in HistoryHeaders order
func (r HistoryRow) Values() []string {
	return []string{
		itoa(r.No), r.Order, r.OrderDate, r.TankName, r.TankHigh, r.Level,
		r.SignalLow, r.SignalHigh, r.Current, itoa(r.OrderNumber), r.Volume, r.Station,
	}
}

// LiveRow is one row of the current telemetry snapshot
type LiveRow struct {
	No            int
	TankName      string
	Volume        string
	Percent       string
	SignalLow     string
	SignalHigh    string
	SignalCurrent string
	TankHigh      string
	FlowRate      string
	RecordedAt    string
}

// Values returns the row in LiveHeaders order
func (r LiveRow) Values() []string {
	return []string{
		itoa(r.No), r.TankName, r.Volume, r.Percent, r.SignalLow, r.SignalHigh,
		r.SignalCurrent, r.TankHigh, r.FlowRate, r.RecordedAt,
	}
}

// Numeric columns are right-aligned in tables
var (
	historyRightAligned = map[int]bool{0: true, 5: true, 8: true, 9: true, 10: true}
	liveRightAligned    = map[int]bool{0: true, 2: true, 3: true, 6: true, 8: true}
)
