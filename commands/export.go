package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the Batch-Out history to a file",
	Long: `Writes the full Batch-Out history, newest first, to
Batch_Out_History_<YYYY-MM-DD>.<ext> in the output directory.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv",
		"File format (csv, json, parquet, table)")
	exportCmd.Flags().StringVar(&exportDir, "out", ".",
		"Output directory")
}

// exportFileName names an export taken on the given day
func exportFileName(day time.Time, ext string) string {
	return fmt.Sprintf("Batch_Out_History_%s.%s", day.Format("2006-01-02"), ext)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupRuntime(cfg)
	defer util.CloseLogger()

	f, err := formatter.NewFormatter(exportFormat)
	if err != nil {
		return err
	}

	historyStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer historyStore.Close()

	rows := formatter.BuildHistoryRows(batchout.NewTracker(historyStore).History())

	dir := exportDir
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, exportFileName(util.GetTimeProvider().Now(), f.Extension()))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := f.Format(file, rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	util.LogInfo("Batch-out history exported", util.F("path", path), util.F("events", len(rows)))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(rows), path)
	return nil
}
