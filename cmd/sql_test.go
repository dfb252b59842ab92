package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pable/scoresheet-metrics/internal/storage"
)

func TestSQLCommand_FindsRescoredSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	for _, c := range []struct{ name, hash, out string }{
		{"0001.mss", "aaaa", "2\nA\nB\n"},
		{"0001.mss", "bbbb", "2\nA\nB\n"},
		{"0002.mss", "cccc", "3\nA\nB\nC\n"},
	} {
		if err := db.PutCalc(c.name, c.hash, c.out); err != nil {
			t.Fatalf("PutCalc: %v", err)
		}
	}
	db.Close()

	stdout, _ := captureOutput(t)
	err = runRoot(t, "sql", "--db", path,
		"SELECT source_name, COUNT(*) FROM calcs GROUP BY source_name HAVING COUNT(*) > 1")
	if err != nil {
		t.Fatalf("sql: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "0001.mss") || strings.Contains(out, "0002.mss") {
		t.Errorf("expected only 0001.mss:\n%s", out)
	}
	if !strings.Contains(out, "(1 rows)") {
		t.Errorf("missing row count:\n%s", out)
	}

	stdout.Reset()
	err = runRoot(t, "sql", "--db", path,
		"SELECT source_name, substr(output, 1, instr(output, char(10)) - 1) AS players FROM calcs WHERE source_name = '0002.mss'")
	if err != nil {
		t.Fatalf("sql: %v", err)
	}
	if out := stdout.String(); !strings.Contains(out, "3") || !strings.Contains(out, "(1 rows)") {
		t.Errorf("expected the player count of 0002.mss:\n%s", out)
	}
}

func TestSQLCommand_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	stdout, _ := captureOutput(t)
	if err := runRoot(t, "sql", "--db", path, "SELECT * FROM calcs"); err != nil {
		t.Fatalf("sql: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "(no rows)" {
		t.Errorf("got %q, want (no rows)", got)
	}
}
