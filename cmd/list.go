package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/scoresheet-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scorer outputs stored in the SQLite cache",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if _, err := os.Stat(settings.DBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No cache database yet. Run 'ssmetrics report --cache db' to create one.")
		return nil
	}
	db, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	calcs, err := db.ListCalcs()
	if err != nil {
		return fmt.Errorf("list calcs: %w", err)
	}
	if len(calcs) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}

	fmt.Fprintf(out, "%-24s  %-12s  %8s  %s\n", "FILE", "HASH", "SIZE", "STORED")
	fmt.Fprintf(out, "%-24s  %-12s  %8s  %s\n",
		"────────────────────────", "────────────", "────────", "──────")
	var total uint64
	for _, c := range calcs {
		total += uint64(c.Size)
		fmt.Fprintf(out, "%-24s  %-12s  %8s  %s\n",
			c.SourceName, shortHash(c.SourceHash), humanize.Bytes(uint64(c.Size)), humanize.Time(c.CreatedAt))
	}
	fmt.Fprintf(out, "\n%s entries, %s\n", humanize.Comma(int64(len(calcs))), humanize.Bytes(total))
	return nil
}

// shortHash returns at most the first 12 characters of a content hash.
func shortHash(h string) string {
	return h[:min(12, len(h))]
}
