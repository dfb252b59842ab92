package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pable/scoresheet-metrics/internal/scorer"
	"github.com/pable/scoresheet-metrics/internal/storage"
)

// countingScorer returns a fixed text and counts invocations.
type countingScorer struct {
	text  string
	calls int
	err   error
}

func (c *countingScorer) Score(_ context.Context, path string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return p
}

func fetch(t *testing.T, src Source, path string) (string, bool) {
	t.Helper()
	text, cached, err := src.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch %s: %v", path, err)
	}
	return text, cached
}

func TestCompanion_WritesThenReuses(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "0001.mss", "moves")
	sc := &countingScorer{text: "1\nA\n0\n"}
	src := Companion{Scorer: sc}

	text, cached := fetch(t, src, sheet)
	if cached {
		t.Error("first fetch should run the scorer")
	}
	if text != "1\nA\n0\n" {
		t.Errorf("text: got %q", text)
	}

	b, err := os.ReadFile(filepath.Join(dir, "0001.msscalc"))
	if err != nil {
		t.Fatalf("read companion: %v", err)
	}
	if string(b) != "1\nA\n0\n" {
		t.Errorf("companion should hold the scorer text verbatim, got %q", b)
	}

	if _, cached := fetch(t, src, sheet); !cached {
		t.Error("second fetch should reuse the companion file")
	}
	if sc.calls != 1 {
		t.Errorf("scorer calls: got %d, want 1", sc.calls)
	}
}

func TestCompanion_StaleAfterEdit(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "0001.mss", "moves")
	src := Companion{Scorer: &countingScorer{text: "1\nA\n0\n"}}

	fetch(t, src, sheet)
	writeSheet(t, dir, "0001.mss", "edited moves")
	if _, cached := fetch(t, src, sheet); !cached {
		t.Error("companion files are not invalidated by edits")
	}
}

func TestDatabase_KeysOnContent(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	sheet := writeSheet(t, dir, "0001.mss", "moves")
	sc := &countingScorer{text: "1\nA\n0\n"}
	src := Database{DB: db, Scorer: sc}

	if _, cached := fetch(t, src, sheet); cached {
		t.Error("first fetch should run the scorer")
	}
	if _, cached := fetch(t, src, sheet); !cached {
		t.Error("unchanged sheet should hit the cache")
	}

	writeSheet(t, dir, "0001.mss", "edited moves")
	if _, cached := fetch(t, src, sheet); cached {
		t.Error("edited scoresheet must be rescored")
	}
	if sc.calls != 2 {
		t.Errorf("scorer calls: got %d, want 2", sc.calls)
	}

	list, err := db.ListCalcs()
	if err != nil {
		t.Fatalf("ListCalcs: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("outdated output should be pruned, %d rows left", len(list))
	}
}

func TestScorerFailureIsNotCached(t *testing.T) {
	dir := t.TempDir()
	sheet := writeSheet(t, dir, "0001.mss", "moves")
	sc := &countingScorer{err: &scorer.SourceUnavailableError{Path: sheet, Reason: "scorer failed"}}

	_, _, err := Companion{Scorer: sc}.Fetch(context.Background(), sheet)
	var sue *scorer.SourceUnavailableError
	if !errors.As(err, &sue) {
		t.Fatalf("expected *scorer.SourceUnavailableError, got %v", err)
	}
	if _, err := os.Stat(CompanionPath(sheet)); !os.IsNotExist(err) {
		t.Errorf("no companion file should be written on failure, stat: %v", err)
	}
}

func TestDirect_AlwaysScores(t *testing.T) {
	sc := &countingScorer{text: "1\nA\n"}
	src := Direct{Scorer: sc}
	for i := 0; i < 2; i++ {
		if _, cached := fetch(t, src, "x.mss"); cached {
			t.Error("direct source never reports a cache hit")
		}
	}
	if sc.calls != 2 {
		t.Errorf("scorer calls: got %d, want 2", sc.calls)
	}
}

func TestNewAndParseMode(t *testing.T) {
	m, err := ParseMode("db")
	if err != nil || m != ModeDB {
		t.Errorf("ParseMode(db): got %v, %v", m, err)
	}
	if _, err := ParseMode("redis"); err == nil {
		t.Error("unknown mode should be rejected")
	}

	if _, err := New(ModeDB, &countingScorer{}, nil); err == nil {
		t.Error("db mode without a database should be rejected")
	}
	src, err := New(ModeFile, &countingScorer{}, nil)
	if err != nil {
		t.Fatalf("New(file): %v", err)
	}
	if _, ok := src.(Companion); !ok {
		t.Errorf("file mode: got %T, want Companion", src)
	}
}
