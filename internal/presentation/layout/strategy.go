package layout

import (
	"io"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
)

const (
	StyleFull = iota
	StyleMinimal
	styleCount
)

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(w io.Writer, view model.DashboardView, param model.LayoutParam) error
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	switch layoutStyle {
	case StyleMinimal:
		return &MinimalLayoutStrategy{}
	default:
		return &FullLayoutStrategy{}
	}
}

// NextStyle cycles through the available layouts
func NextStyle(layoutStyle int) int {
	return (layoutStyle + 1) % styleCount
}

// DefaultParam builds layout parameters for the current terminal
func DefaultParam(pageSize int) model.LayoutParam {
	return model.LayoutParam{
		Width:    sharedSizer.GetMaxWidth(),
		PageSize: pageSize,
	}
}
