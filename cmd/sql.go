package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/scoresheet-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Query the scorer output cache with SQL",
	Long: `Run a query against the SQLite cache used by 'report --cache db' and print
the result as a table.

The cache has a single table:
  calcs(source_name, source_hash, output, created_at)

source_hash is the SHA-256 of the scoresheet when it was scored and
created_at a Unix timestamp. Outputs of older content are pruned on rescore,
so a name with two hashes means a rescore was interrupted.

Examples:
  # sheets scored more than once
  ssmetrics sql "SELECT source_name, COUNT(*) FROM calcs GROUP BY source_name HAVING COUNT(*) > 1"

  # player count of every cached game (first line of the scorer output)
  ssmetrics sql "SELECT source_name, substr(output, 1, instr(output, char(10)) - 1) FROM calcs"

  # force a rescore of one sheet
  ssmetrics sql "DELETE FROM calcs WHERE source_name = '0042.mss'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("open cache %s: %w", settings.DBPath, err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	printRows(cmd.OutOrStdout(), cols, rows)
	return nil
}

// printRows renders a query result; statements without a result set print
// "(no rows)".
func printRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = strings.ReplaceAll(v, "\n", `\n`)
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
