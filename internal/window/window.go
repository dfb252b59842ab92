// Package window splits the session timeline into fixed-size reporting
// windows and tracks which players appear in each.
package window

import (
	"fmt"

	"github.com/pable/scoresheet-metrics/internal/model"
)

// Partition returns ceil(nSessions/size) windows covering [0, nSessions).
// The last window may be shorter than size.
func Partition(nSessions, size int) ([]model.Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if nSessions < 0 {
		return nil, fmt.Errorf("negative session count %d", nSessions)
	}
	n := (nSessions + size - 1) / size
	out := make([]model.Window, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, model.Window{
			Index: k,
			Start: k * size,
			End:   min((k+1)*size, nSessions),
		})
	}
	return out, nil
}

// Slice returns the part of an aligned history covered by w.
func Slice(history []model.Session, w model.Window) []model.Session {
	end := min(w.End, len(history))
	if w.Start >= end {
		return nil
	}
	return history[w.Start:end]
}

// Present reports whether at least one session of w is non-absent.
func Present(history []model.Session, w model.Window) bool {
	for _, s := range Slice(history, w) {
		if s.IsPresent() {
			return true
		}
	}
	return false
}

// Histories is the read side of a result store.
type Histories interface {
	Players() []string
	History(player string) ([]model.Session, bool)
}

// PresenceMap returns, per player, one presence flag per window.
func PresenceMap(h Histories, windows []model.Window) map[string][]bool {
	out := make(map[string][]bool)
	for _, p := range h.Players() {
		hist, _ := h.History(p)
		flags := make([]bool, len(windows))
		for i, w := range windows {
			flags[i] = Present(hist, w)
		}
		out[p] = flags
	}
	return out
}
