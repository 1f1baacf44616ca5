package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-brewpub-monitor/internal/config"
	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/data/store"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Configuration sources
	configPath   string
	endpoint     string
	dataDir      string
	storeBackend string
	redisAddr    string
	timezone     string

	// Output related
	outputFormat string
	page         int

	// History maintenance
	reset     bool
	assumeYes bool

	rootCmd = &cobra.Command{
		Use:   "go-brewpub-monitor [flags]",
		Short: "Brew pub tank monitor and Batch-Out history tracker",
		Long: `go-brewpub-monitor polls the brew pub tank controller, infers Batch-Out
(dispense) events from falling tank levels and keeps them as a persistent,
newest-first history.

Without a subcommand the recorded history is printed.

Examples:
  go-brewpub-monitor                                   # Print the Batch-Out history
  go-brewpub-monitor --output json                     # Print it as JSON
  go-brewpub-monitor --page 2                          # Print the second page of 10 events
  go-brewpub-monitor watch                             # Live view, polls every 15s
  go-brewpub-monitor watch --headless                  # Record without a terminal UI
  go-brewpub-monitor export --format parquet           # Write Batch_Out_History_<date>.parquet
  go-brewpub-monitor --reset                           # Clear the history (asks first)`,
		RunE:          runHistory,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	// Shared configuration
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file (default $"+config.ConfigPathEnv+")")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", config.DefaultEndpoint,
		"Tank controller REST endpoint")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir,
		"Directory holding the history file")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", config.StoreFile,
		"History store backend (file, redis)")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", "",
		"Redis address for the redis store (host:port)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for displayed dates (e.g., Asia/Bangkok, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, csv, json, summary)")
	rootCmd.Flags().IntVar(&page, "page", 0,
		"Show a single page of the history (0 = all)")

	// History maintenance
	rootCmd.Flags().BoolVar(&reset, "reset", false,
		"Clear the Batch-Out history")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false,
		"Do not ask for confirmation")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	if reset {
		return resetHistory(historyStore, cmd.InOrStdin(), out, assumeYes)
	}

	if outputFormat == "parquet" {
		return fmt.Errorf("parquet output is binary, use the export command")
	}
	f, err := formatter.NewFormatter(outputFormat)
	if err != nil {
		return err
	}

	rows := formatter.BuildHistoryRows(batchout.NewTracker(historyStore).History())
	if page <= 0 {
		return f.Format(out, rows)
	}

	rows, current, totalPages := formatter.Paginate(rows, page, cfg.PageSize)
	if err := f.Format(out, rows); err != nil {
		return err
	}
	if outputFormat == "table" {
		fmt.Fprintf(out, "Page %d/%d\n", current, totalPages)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig layers .env, the config file, BREWPUB_* variables and the
// flags the user set, in that order
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = endpoint
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("store") {
		cfg.Store = storeBackend
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = redisAddr
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("interval") {
		cfg.RefreshInterval = watchInterval
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupRuntime initializes logging and the display timezone
func setupRuntime(cfg *config.Config) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := config.ExpandPath(cfg.LogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, util.LogFormat(cfg.LogFormat), debug)
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		util.LogWarn("Falling back to local timezone", util.F("timezone", cfg.Timezone), util.F("error", err))
	}
}

func openStore(cfg *config.Config) (store.HistoryStore, error) {
	historyStore, err := store.New(store.Options{
		Backend:       cfg.Store,
		Dir:           config.ExpandPath(cfg.DataDir),
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisKey:      cfg.Redis.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return historyStore, nil
}

// resetHistory clears the store after the user confirms
func resetHistory(historyStore store.HistoryStore, in io.Reader, out io.Writer, skipPrompt bool) error {
	if !skipPrompt && !confirm(in, out, "Clear the whole Batch-Out history? (y/N): ") {
		fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}

	if err := historyStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	util.LogInfo("Batch-out history cleared", util.F("store", historyStore.Describe()))
	fmt.Fprintln(out, "Batch-Out history cleared.")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
