package fixtures

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
)

// TimeLayout matches the controller's local timestamp format
const TimeLayout = "2006-01-02T15:04:05"

// TankReading describes one sample to generate
type TankReading struct {
	At       time.Time
	Level    float64
	TankName string
	// StopTime, when set, becomes Data_time_stop
	StopTime time.Time
}

// SnapshotGenerator builds telemetry records shaped like the tank controller output
type SnapshotGenerator struct {
	station string
}

// NewSnapshotGenerator creates a generator whose records carry station
func NewSnapshotGenerator(station string) *SnapshotGenerator {
	return &SnapshotGenerator{station: station}
}

// Record builds a single telemetry record
func (g *SnapshotGenerator) Record(r TankReading) model.TankRecord {
	record := model.TankRecord{
		model.FieldTimeStamp:     r.At.Format(TimeLayout),
		model.FieldLevel:         r.Level,
		model.FieldTankName:      r.TankName,
		model.FieldTankHigh:      250.0,
		model.FieldSignalLow:     4.0,
		model.FieldSignalHigh:    20.0,
		model.FieldSignalCurrent: 4 + 16*r.Level/250,
		model.FieldPercent:       r.Level / 250 * 100,
		model.FieldFlowRate:      0.0,
		model.FieldStation:       g.station,
	}
	if !r.StopTime.IsZero() {
		record[model.FieldStopTime] = r.StopTime.Format(TimeLayout)
	}
	return record
}

// Drain generates a tank emptying by step cm per minute, oldest first
func (g *SnapshotGenerator) Drain(tank string, start time.Time, level, step float64, count int) []model.TankRecord {
	records := make([]model.TankRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.Record(TankReading{
			At:       start.Add(time.Duration(i) * time.Minute),
			Level:    level - float64(i)*step,
			TankName: tank,
		}))
	}
	return records
}

// Payload encodes records the way the controller serves them
func Payload(records []model.TankRecord) []byte {
	data, err := sonic.Marshal(records)
	if err != nil {
		panic(fmt.Sprintf("fixtures: encode snapshot: %v", err))
	}
	return data
}
