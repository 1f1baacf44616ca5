package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Placeholder is rendered for absent values in tables and exports
const Placeholder = "-"

// ParseNumeric coerces a JSON value (number or numeric string) to float64.
// Booleans, nulls, empty and non-finite values are rejected.
func ParseNumeric(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatValue renders an opaque telemetry value, or the placeholder when absent
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatVolume renders liters with two decimals; zero or less is the placeholder
func FormatVolume(liters float64) string {
	if liters <= 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", liters)
}

// FormatFixed3 renders numeric values with three decimals and passes
// anything else through unchanged.
func FormatFixed3(v interface{}) string {
	if v == nil {
		return Placeholder
	}
	if f, ok := ParseNumeric(v); ok {
		return fmt.Sprintf("%.3f", f)
	}
	return FormatValue(v)
}

// FormatOrderLabel builds the "TL001 DD/MM/YYYY HH:mm:ss" order label
func FormatOrderLabel(rowNumber int, timestamp string) string {
	if timestamp == "" {
		return Placeholder
	}
	return fmt.Sprintf("TL%03d %s", rowNumber, FormatDate(timestamp))
}

// FormatCountdown renders the seconds left until the next refresh
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%ds", int(math.Ceil(d.Seconds())))
}
