package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/application/monitor"
	"github.com/penwyp/go-brewpub-monitor/internal/config"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration
	watchOnce     bool
	watchHeadless bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the tank controller and record Batch-Out events",
	Long: `Polls the tank controller on a fixed cadence and shows the live tank
snapshot next to the recorded Batch-Out history.

A reading is recorded as a Batch-Out event when its volume is above the
noise floor, its timestamp is new and its volume is lower than the most
recently recorded event.

Keys: p pause/resume, r refresh now, n/b or arrows page the history,
t switch layout, h help, q quit.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", config.DefaultRefreshInterval,
		"Polling interval (minimum 1s)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false,
		"Poll a single time, record and exit")
	watchCmd.Flags().BoolVar(&watchHeadless, "headless", false,
		"Record without the terminal UI until interrupted")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupRuntime(cfg)
	defer util.CloseLogger()

	historyStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer historyStore.Close()

	orchestrator, err := monitor.NewOrchestrator(cfg, historyStore)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case watchOnce:
		result, err := orchestrator.PollOnce(ctx)
		if err != nil {
			return fmt.Errorf("poll failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Polled %d records, recorded %d new batch-out event(s)\n",
			result.Total, result.Accepted)
		if result.SaveErr != nil {
			return fmt.Errorf("history not saved: %w", result.SaveErr)
		}
		return nil
	case watchHeadless:
		return orchestrator.RunHeadless(ctx)
	default:
		return orchestrator.Run(ctx)
	}
}
