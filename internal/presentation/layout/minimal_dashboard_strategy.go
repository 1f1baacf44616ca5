package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
)

// MinimalLayoutStrategy implements the single-line dashboard layout
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(w io.Writer, view model.DashboardView, param model.LayoutParam) error {
	line := fmt.Sprintf("BrewPub: 🛢 %d tanks | 📜 %d events | ⬇ %s | %s",
		len(view.Live),
		len(view.History),
		s.LatestEventText(view.History),
		s.StatusText(view, s.Now(param)))

	_, err := fmt.Fprintln(w, line)
	return err
}
