package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/scoresheet-metrics/internal/aggregator"
	"github.com/pable/scoresheet-metrics/internal/cache"
	"github.com/pable/scoresheet-metrics/internal/loader"
	"github.com/pable/scoresheet-metrics/internal/report"
	"github.com/pable/scoresheet-metrics/internal/scorer"
	"github.com/pable/scoresheet-metrics/internal/storage"
)

var (
	reportWindow  int
	reportScorer  string
	reportExt     string
	reportCache   string
	reportNatural bool
)

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Print overall and per-window statistics for a scoresheet directory",
	Long: `Score every scoresheet in dir (default from config, "scoresheets"), ordered by
file name, and print one table over all sessions followed by one table per
window of sessions. Players absent from a whole window are left out of that
window's table.

Cache modes:
  file  reuse "<sheet>calc" next to each scoresheet; editing a scoresheet
        does not invalidate it, delete the calc file to rescore
  db    SQLite cache keyed by file name and content hash
  off   always run the scorer`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&reportWindow, "window", "w", 0, "sessions per window (default from config, 25)")
	reportCmd.Flags().StringVar(&reportScorer, "scorer", "", "path to the scorer binary")
	reportCmd.Flags().StringVar(&reportExt, "ext", "", "scoresheet file extension")
	reportCmd.Flags().StringVar(&reportCache, "cache", "", "cache mode: file, db or off")
	reportCmd.Flags().BoolVar(&reportNatural, "natural", false, "natural file name order (9 before 10)")
}

func runReport(cmd *cobra.Command, args []string) error {
	s := settings
	if len(args) == 1 {
		s.Dir = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("window") {
		if reportWindow <= 0 {
			return fmt.Errorf("--window must be positive, got %d", reportWindow)
		}
		s.WindowSize = reportWindow
	}
	if flags.Changed("scorer") {
		s.ScorerPath = reportScorer
	}
	if flags.Changed("ext") {
		s.Ext = reportExt
	}
	if flags.Changed("cache") {
		s.CacheMode = reportCache
	}
	if flags.Changed("natural") {
		s.Natural = reportNatural
	}

	paths, err := loader.ListSheets(s.Dir, s.Ext, s.Natural)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s scoresheets in %s.\n", s.Ext, s.Dir)
		return nil
	}

	src, closeSrc, err := openSource(s.CacheMode, s.ScorerPath, s.DBPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	fmt.Fprintf(cmd.ErrOrStderr(), "Loading %d scoresheets from %s...\n", len(paths), s.Dir)
	store, err := loader.Load(cmd.Context(), paths, src, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	summary, err := aggregator.Compute(store, s.WindowSize)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	report.Render(cmd.OutOrStdout(), report.Build(summary))
	return nil
}

// openSource builds the scorer text source for a cache mode. The returned
// func releases the database, if one was opened.
func openSource(modeName, scorerPath, dbFile string) (cache.Source, func(), error) {
	mode, err := cache.ParseMode(modeName)
	if err != nil {
		return nil, nil, err
	}
	sc := scorer.Exec{Binary: scorerPath}

	var db *storage.DB
	closeDB := func() {}
	if mode == cache.ModeDB {
		if err := os.MkdirAll(filepath.Dir(dbFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("create db dir: %w", err)
		}
		db, err = storage.Open(dbFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage: %w", err)
		}
		closeDB = func() { db.Close() }
	}

	src, err := cache.New(mode, sc, db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return src, closeDB, nil
}
