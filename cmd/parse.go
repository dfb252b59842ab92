package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/scoresheet-metrics/internal/parser"
	"github.com/pable/scoresheet-metrics/internal/report"
)

var (
	parseScorer string
	parseCache  string
)

var parseCmd = &cobra.Command{
	Use:   "parse <sheet.mss>",
	Short: "Score one scoresheet and print its turns and end scores",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseScorer, "scorer", "", "path to the scorer binary")
	parseCmd.Flags().StringVar(&parseCache, "cache", "", "cache mode: file, db or off")
}

func runParse(cmd *cobra.Command, args []string) error {
	sheetPath := args[0]
	s := settings
	if cmd.Flags().Changed("scorer") {
		s.ScorerPath = parseScorer
	}
	if cmd.Flags().Changed("cache") {
		s.CacheMode = parseCache
	}

	src, closeSrc, err := openSource(s.CacheMode, s.ScorerPath, s.DBPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	text, cached, err := src.Fetch(cmd.Context(), sheetPath)
	if err != nil {
		return err
	}
	game, err := parser.Parse(filepath.Base(sheetPath), text)
	if err != nil {
		return err
	}
	if cached {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already scored — showing cached results.\n", game.Source)
	}
	report.PrintGame(cmd.OutOrStdout(), game)
	return nil
}
