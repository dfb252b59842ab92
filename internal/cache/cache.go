// Package cache memoizes scorer output so each scoresheet is scored once.
//
// Two layouts exist. The companion-file layout writes "<source>calc" next to
// the scoresheet and trusts it on later runs: editing a scoresheet without
// deleting its companion file reuses the stale output. The database layout
// keys outputs by file name and a SHA-256 of the scoresheet content, so an
// edited scoresheet is scored again.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pable/scoresheet-metrics/internal/scorer"
	"github.com/pable/scoresheet-metrics/internal/storage"
)

// Mode selects a cache layout.
type Mode string

const (
	ModeFile Mode = "file"
	ModeDB   Mode = "db"
	ModeOff  Mode = "off"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFile, ModeDB, ModeOff:
		return m, nil
	default:
		return "", fmt.Errorf("unknown cache mode %q (want file, db or off)", s)
	}
}

// CompanionSuffix is appended to a scoresheet path to name its cache file.
const CompanionSuffix = "calc"

// Source yields scorer text for a scoresheet. cached reports whether the
// scorer was skipped.
type Source interface {
	Fetch(ctx context.Context, path string) (text string, cached bool, err error)
}

// Direct always runs the scorer.
type Direct struct {
	Scorer scorer.Scorer
}

func (d Direct) Fetch(ctx context.Context, path string) (string, bool, error) {
	text, err := d.Scorer.Score(ctx, path)
	return text, false, err
}

// Companion reads and writes "<path>calc" files.
type Companion struct {
	Scorer scorer.Scorer
}

// CompanionPath returns the cache file path for a scoresheet.
func CompanionPath(path string) string {
	return path + CompanionSuffix
}

func (c Companion) Fetch(ctx context.Context, path string) (string, bool, error) {
	calc := CompanionPath(path)
	b, err := os.ReadFile(calc)
	if err == nil {
		return string(b), true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("read cache %s: %w", calc, err)
	}

	text, err := c.Scorer.Score(ctx, path)
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(calc, []byte(text), 0644); err != nil {
		return "", false, fmt.Errorf("write cache %s: %w", calc, err)
	}
	return text, false, nil
}

// Database stores outputs in SQLite keyed by (file name, content hash).
type Database struct {
	DB     *storage.DB
	Scorer scorer.Scorer
}

func (d Database) Fetch(ctx context.Context, path string) (string, bool, error) {
	hash, err := HashFile(path)
	if err != nil {
		return "", false, &scorer.SourceUnavailableError{Path: path, Reason: "cannot read scoresheet", Err: err}
	}
	name := filepath.Base(path)

	text, ok, err := d.DB.GetCalc(name, hash)
	if err != nil {
		return "", false, fmt.Errorf("lookup cache for %s: %w", name, err)
	}
	if ok {
		return text, true, nil
	}

	text, err = d.Scorer.Score(ctx, path)
	if err != nil {
		return "", false, err
	}
	if err := d.DB.PutCalc(name, hash, text); err != nil {
		return "", false, err
	}
	if _, err := d.DB.PruneCalcs(name, hash); err != nil {
		return "", false, fmt.Errorf("prune cache for %s: %w", name, err)
	}
	return text, false, nil
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// New builds the Source for mode. db is only used by ModeDB and must be
// non-nil there.
func New(mode Mode, sc scorer.Scorer, db *storage.DB) (Source, error) {
	switch mode {
	case ModeFile:
		return Companion{Scorer: sc}, nil
	case ModeDB:
		if db == nil {
			return nil, fmt.Errorf("cache mode %q needs a database", mode)
		}
		return Database{DB: db, Scorer: sc}, nil
	case ModeOff:
		return Direct{Scorer: sc}, nil
	default:
		return nil, fmt.Errorf("unknown cache mode %q", mode)
	}
}
