package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/scoresheet-metrics/internal/config"
	"github.com/pable/scoresheet-metrics/internal/logging"
)

var (
	configPath string
	dbPath     string
	verbose    bool

	// settings is resolved from defaults, the config file and flags before
	// any command runs.
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:               "ssmetrics",
	Short:             "Mahjong scoresheet statistics",
	Long:              "Score a directory of mahjong scoresheets and report per-player statistics overall and per window of sessions.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to SQLite result cache (cache mode db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings, err = fileCfg.Apply(config.Defaults())
	if err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}
	if cmd.Flags().Changed("db") {
		settings.DBPath = dbPath
	}

	logger := logging.NewLogger(verbose)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}
