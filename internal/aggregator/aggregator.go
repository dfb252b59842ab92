package aggregator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/pable/scoresheet-metrics/internal/model"
	"github.com/pable/scoresheet-metrics/internal/window"
)

// Summarize reduces a range of sessions to a WindowStats. Absent sessions
// are ignored. When no session is present the zero value is returned and
// GamesPlayed is 0; callers skip such ranges.
func Summarize(sessions []model.Session) model.WindowStats {
	var (
		out   model.WindowStats
		turns []float64
		ends  []float64
	)
	for _, s := range sessions {
		if !s.IsPresent() {
			continue
		}
		gain := s.GainSum()
		end := s.EndScore()

		out.GamesPlayed++
		out.GainSum += gain
		out.TurnCount += len(s.Turns())
		out.EndScoreSum += end
		if s.Won() {
			out.Wins++
		}
		for _, v := range s.Turns() {
			turns = append(turns, float64(v))
		}
		ends = append(ends, float64(end))
	}
	if out.GamesPlayed == 0 {
		return out
	}

	// Means come from the integer sums, never from averaged sub-means.
	if out.TurnCount > 0 {
		out.TurnGain = minMax(turns)
		out.TurnGain.Mean = float64(out.GainSum) / float64(out.TurnCount)
	}
	out.EndScore = minMax(ends)
	out.EndScore.Mean = float64(out.EndScoreSum) / float64(out.GamesPlayed)
	return out
}

func minMax(data []float64) model.Range {
	lo, err := stats.Min(data)
	if err != nil {
		return model.Range{}
	}
	hi, err := stats.Max(data)
	if err != nil {
		return model.Range{}
	}
	return model.Range{Min: lo, Max: hi, Valid: true}
}

// Store is the read side of the result store the engine consumes.
type Store interface {
	window.Histories
	Sessions() int
}

// Compute produces per-player statistics for every window and for the full
// timeline. Histories must already be aligned to store.Sessions().
func Compute(store Store, windowSize int) (*model.Summary, error) {
	n := store.Sessions()
	windows, err := window.Partition(n, windowSize)
	if err != nil {
		return nil, err
	}
	presence := window.PresenceMap(store, windows)

	summary := &model.Summary{
		Sessions:   n,
		WindowSize: windowSize,
		Windows:    windows,
	}
	for _, player := range store.Players() {
		hist, _ := store.History(player)
		if len(hist) != n {
			return nil, fmt.Errorf("history of %q has %d sessions, timeline has %d (not aligned)", player, len(hist), n)
		}

		ps := model.PlayerSummary{
			Name:    player,
			Windows: make([]*model.WindowStats, len(windows)),
		}
		for i, w := range windows {
			if !presence[player][i] {
				continue
			}
			ws := Summarize(window.Slice(hist, w))
			ps.Windows[i] = &ws
		}
		if total := Summarize(hist); total.GamesPlayed > 0 {
			ps.Total = &total
		}
		summary.Players = append(summary.Players, ps)
	}
	return summary, nil
}
