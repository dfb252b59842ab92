// Package loader turns a directory of scoresheets into an aligned result
// store. File name order fixes the session timeline.
package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/maruel/natural"

	"github.com/pable/scoresheet-metrics/internal/cache"
	"github.com/pable/scoresheet-metrics/internal/history"
	"github.com/pable/scoresheet-metrics/internal/logging"
	"github.com/pable/scoresheet-metrics/internal/parser"
)

// ListSheets returns the paths of the files in dir ending in ext, sorted by
// name. natural switches from byte order to natural order ("9" < "10").
// Subdirectories are not visited.
func ListSheets(dir, ext string, naturalOrder bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scoresheet dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	if naturalOrder {
		sort.SliceStable(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	} else {
		sort.Strings(names)
	}

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// Load fetches, parses and records every sheet in order. Any failure aborts
// the whole load. The returned store is aligned to len(paths).
// When progress is non-nil one "[i/n] <file> (cached|scored)" line is written
// per sheet.
func Load(ctx context.Context, paths []string, src cache.Source, progress io.Writer) (*history.Store, error) {
	log := logging.FromContext(ctx)
	store := history.NewStore()
	hits := 0
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, cached, err := src.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		if cached {
			hits++
		}
		if progress != nil {
			state := "scored"
			if cached {
				state = "cached"
			}
			fmt.Fprintf(progress, "[%d/%d] %s (%s)\n", i+1, len(paths), filepath.Base(path), state)
		}
		game, err := parser.Parse(filepath.Base(path), text)
		if err != nil {
			return nil, err
		}
		if err := store.Append(game, i); err != nil {
			return nil, fmt.Errorf("record %s: %w", path, err)
		}
		log.Debugw("loaded scoresheet",
			"file", filepath.Base(path), "session", i+1,
			"players", len(game.Players), "turns", len(game.Turns), "cached", cached)
	}
	if err := store.Align(len(paths)); err != nil {
		return nil, err
	}

	for _, p := range store.Players() {
		if store.Rejoined(p) {
			log.Warnw("player left and rejoined; absent sessions count as not played", "player", p)
		}
	}
	log.Infow("scoresheets loaded",
		"sessions", humanize.Comma(int64(len(paths))),
		"players", len(store.Players()),
		"cache_hits", humanize.Comma(int64(hits)))
	return store, nil
}
