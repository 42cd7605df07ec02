// Package main provides the CLI entry point for shelfmap.
package main

import (
	"fmt"
	"os"

	"github.com/biblioteca/shelfmap/internal/config"
	"github.com/biblioteca/shelfmap/internal/logging"
	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelfmap",
		Short: "Find library shelf locations by Dewey number",
		Long: `shelfmap loads a library location spreadsheet and answers which aisle,
shelf unit and shelf level hold a given Dewey classification number.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the spreadsheet and CSV files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json, console")

	rootCmd.AddCommand(newServeCmd(), newImportCmd(), newLookupCmd())
	return rootCmd
}

// setup loads configuration, applies explicit flags and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	return nil
}

func cacheSources() shelfmap.Sources {
	return shelfmap.Sources{
		Spreadsheet: cfg.SpreadsheetPath(),
		Overlays:    cfg.OverlaysPath(),
	}
}
