// Package volume converts raw tank level readings into liquid volume.
package volume

import (
	"math"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// LitersPerCm is π·r²/1000 for the r≈30cm cylindrical tanks, i.e. 0.9·π
const LitersPerCm = 0.9 * math.Pi

// Derive returns the liquid volume in liters for a record.
//
// The level reading wins when it is numeric and non-zero. When the level is
// absent, non-numeric or literally 0 an explicit Volume field is used
// instead. A negative level is clamped to 0 without consulting Volume. The
// result is always finite and never negative.
func Derive(record model.TankRecord) float64 {
	cm, ok := util.ParseNumeric(record.LevelValue())
	if ok && cm != 0 {
		return toLiters(cm)
	}
	if override, ok := util.ParseNumeric(record.Value(model.FieldVolume)); ok && override > 0 {
		return override
	}
	return 0
}

// toLiters is 0 for negative levels and for products that overflow float64
func toLiters(cm float64) float64 {
	if cm <= 0 {
		return 0
	}
	v := cm * LitersPerCm
	if math.IsInf(v, 0) {
		return 0
	}
	return v
}
