// Package history accumulates scored games into per-player chronological
// session histories.
package history

import (
	"fmt"

	"github.com/pable/scoresheet-metrics/internal/model"
)

// Store owns every player's history. Index i of a history is global
// session i.
type Store struct {
	order     []string
	histories map[string][]model.Session
	sessions  int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{histories: make(map[string][]model.Session)}
}

// Append records game as session sessionIndex for every roster player.
// Players seen for the first time are backfilled with absence markers, as
// are known players who skipped sessions since their last record.
func (s *Store) Append(game *model.Game, sessionIndex int) error {
	if game == nil {
		return fmt.Errorf("nil game")
	}
	if sessionIndex < 0 {
		return fmt.Errorf("negative session index %d", sessionIndex)
	}
	// Check the whole roster first so a rejected game leaves no trace.
	for _, player := range game.Players {
		if h := s.histories[player]; len(h) > sessionIndex {
			return fmt.Errorf("session %d for %q: history already has %d sessions", sessionIndex, player, len(h))
		}
	}
	for i, player := range game.Players {
		h, known := s.histories[player]
		if !known {
			s.order = append(s.order, player)
		}
		h = padAbsent(h, sessionIndex)
		s.histories[player] = append(h, model.Present(game.Column(i)))
	}
	if sessionIndex+1 > s.sessions {
		s.sessions = sessionIndex + 1
	}
	return nil
}

// Align pads every history with absence markers up to nSessions entries.
// Afterwards all histories are index-aligned with the global timeline.
func (s *Store) Align(nSessions int) error {
	if nSessions < s.sessions {
		return fmt.Errorf("align to %d sessions: %d already recorded", nSessions, s.sessions)
	}
	for _, player := range s.order {
		s.histories[player] = padAbsent(s.histories[player], nSessions)
	}
	s.sessions = nSessions
	return nil
}

// Sessions returns the number of sessions on the global timeline.
func (s *Store) Sessions() int { return s.sessions }

// Players returns every known player in order of first appearance.
func (s *Store) Players() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// History returns the player's sessions. The slice must not be modified.
func (s *Store) History(player string) ([]model.Session, bool) {
	h, ok := s.histories[player]
	return h, ok
}

// Rejoined reports whether the player played, missed at least one session,
// then played again.
func (s *Store) Rejoined(player string) bool {
	joined, gap := false, false
	for _, sess := range s.histories[player] {
		switch {
		case sess.IsPresent() && gap:
			return true
		case sess.IsPresent():
			joined = true
		case joined:
			gap = true
		}
	}
	return false
}

func padAbsent(h []model.Session, n int) []model.Session {
	for len(h) < n {
		h = append(h, model.Absent())
	}
	return h
}
