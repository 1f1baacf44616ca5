package layout

import (
	"fmt"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/core/volume"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct{}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// StatusText describes the poller state: error, loading, paused or the countdown
func (b *BaseStrategy) StatusText(view model.DashboardView, now time.Time) string {
	switch {
	case view.ErrorMessage != "":
		return util.Colorize(util.ColorRed, "✖ "+view.ErrorMessage)
	case view.IsLoading:
		msg := view.LoadingMessage
		if msg == "" {
			msg = "Refreshing..."
		}
		return util.Colorize(util.ColorYellow, "⟳ "+msg)
	case view.State.IsPaused:
		return util.Colorize(util.ColorYellow, "⏸ Paused")
	case view.NextRefresh.IsZero():
		return util.Colorize(util.ColorGreen, "● Live")
	default:
		return util.Colorize(util.ColorGreen, "● Live") + "  next refresh in " + util.FormatCountdown(view.NextRefresh.Sub(now))
	}
}

// LastUpdateText renders the time of the last successful poll
func (b *BaseStrategy) LastUpdateText(view model.DashboardView) string {
	if view.LastUpdate.IsZero() {
		return "never"
	}
	return util.GetTimeProvider().Format(view.LastUpdate, util.DisplayLayout)
}

// LatestEventText summarizes the newest history entry
func (b *BaseStrategy) LatestEventText(history model.HistoryLog) string {
	if len(history) == 0 {
		return "no events yet"
	}
	head := history[0]
	return fmt.Sprintf("%s %s L", util.FormatDate(head.SortKey()), util.FormatVolume(volume.Derive(head)))
}

// Now falls back to the wall clock when the caller did not pin a time
func (b *BaseStrategy) Now(param model.LayoutParam) time.Time {
	if param.Now.IsZero() {
		return time.Now()
	}
	return param.Now
}
