package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// FullLayoutStrategy shows the live snapshot and one page of history
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(w io.Writer, view model.DashboardView, param model.LayoutParam) error {
	width := param.Width
	if width == 0 {
		width = s.GetSizer().GetMaxWidth()
	}
	now := s.Now(param)

	var b strings.Builder
	b.WriteString(util.FormatHeaderTitle("🍺 BREW PUB BATCH-OUT MONITOR"))
	b.WriteString("\n")
	b.WriteString(util.FormatSectionSeparator(width))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Source: %s   Store: %s   Updated: %s\n",
		view.Endpoint, view.StoreName, s.LastUpdateText(view))
	b.WriteString(s.StatusText(view, now))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s (%d)\n", util.Colorize(util.ColorBold, "Live tanks"), len(view.Live))
	if err := formatter.RenderLiveTable(&b, formatter.BuildLiveRows(view.Live)); err != nil {
		return err
	}
	b.WriteString("\n")

	rows := formatter.BuildHistoryRows(view.History)
	pageRows, page, totalPages := formatter.Paginate(rows, view.State.Page, param.PageSize)
	fmt.Fprintf(&b, "%s  page %d/%d, %d events\n",
		util.Colorize(util.ColorBold, "Batch-Out history"), page, totalPages, len(rows))
	if err := formatter.NewTableFormatter().Format(&b, pageRows); err != nil {
		return err
	}

	if view.State.StatusMessage != "" {
		fmt.Fprintf(&b, "\n%s\n", view.State.StatusMessage)
	}
	b.WriteString("\n")
	b.WriteString(util.Colorize(util.ColorGray, "←/→ page  p pause  r refresh  t layout  h help  q quit"))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
