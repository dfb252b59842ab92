package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the scorer output cache database",
	Long: `Delete the SQLite cache used by 'report --cache db', including its WAL files.
Every scoresheet is scored again on the next run. Companion <sheet>calc files
written by '--cache file' stay where they are; remove them by hand to rescore.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking")
}

func runDrop(cmd *cobra.Command, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !dropForce {
		fmt.Fprintf(errOut, "Would delete the result cache at %s.\n", settings.DBPath)
		fmt.Fprintln(errOut, "Pass --force to do it.")
		return nil
	}

	removed := 0
	for _, suffix := range []string{"", "-wal", "-shm"} {
		err := os.Remove(settings.DBPath + suffix)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("remove %s: %w", settings.DBPath+suffix, err)
		}
	}
	if removed == 0 {
		fmt.Fprintf(out, "No cache at %s.\n", settings.DBPath)
		return nil
	}
	fmt.Fprintf(out, "Removed cache %s.\n", settings.DBPath)
	return nil
}
