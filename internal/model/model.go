package model

// StartingScore is the stake every player holds at the start of a session.
const StartingScore = 30000

// DefaultWindowSize is the number of sessions per reporting window.
const DefaultWindowSize = 25

// ---- Scorer output ----

// Game is one scored scoresheet: a roster and its turn rows.
// Each row holds one gain per roster player, in roster order.
type Game struct {
	Source  string // file name the game was scored from, "" if unknown
	Players []string
	Turns   [][]int
}

// Column returns the turn gains of the i-th roster player.
func (g *Game) Column(i int) []int {
	out := make([]int, 0, len(g.Turns))
	for _, row := range g.Turns {
		out = append(out, row[i])
	}
	return out
}

// EndScores returns the end score of every roster player, in roster order.
func (g *Game) EndScores() []int {
	out := make([]int, len(g.Players))
	for i := range g.Players {
		out[i] = Present(g.Column(i)).EndScore()
	}
	return out
}

// ---- Player histories ----

// Session is one entry of a player's history: either the turn gains of a
// session the player took part in, or an absence marker.
// A present session may hold zero turns.
type Session struct {
	present bool
	turns   []int
}

// Present returns a session the player took part in.
func Present(turns []int) Session {
	if turns == nil {
		turns = []int{}
	}
	return Session{present: true, turns: turns}
}

// Absent returns the marker for a session the player did not take part in.
func Absent() Session {
	return Session{}
}

// IsPresent reports whether the player took part in the session.
func (s Session) IsPresent() bool { return s.present }

// Turns returns the turn gains of a present session, nil when absent.
func (s Session) Turns() []int { return s.turns }

// GainSum returns the sum of the session's turn gains.
func (s Session) GainSum() int {
	sum := 0
	for _, v := range s.turns {
		sum += v
	}
	return sum
}

// EndScore returns StartingScore plus the session's gains.
// Only meaningful for present sessions.
func (s Session) EndScore() int {
	return StartingScore + s.GainSum()
}

// Won reports whether the session ended at or above the starting stake.
func (s Session) Won() bool {
	return s.present && s.EndScore() >= StartingScore
}

// ---- Windows ----

// Window is the half-open range [Start, End) of global session indices.
type Window struct {
	Index int
	Start int
	End   int
}

// Len returns the number of sessions covered by the window.
func (w Window) Len() int { return w.End - w.Start }

// ---- Aggregated metrics ----

// Range is a (min, mean, max) triple. Valid is false when the underlying
// collection was empty.
type Range struct {
	Min   float64
	Mean  float64
	Max   float64
	Valid bool
}

// WindowStats holds a player's aggregate over a range of sessions.
type WindowStats struct {
	GamesPlayed int
	GainSum     int
	TurnCount   int
	EndScoreSum int
	TurnGain    Range
	EndScore    Range
	Wins        int
}

// WinPct returns floor(100 * wins / games), or 0 when no games were played.
func (s WindowStats) WinPct() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return 100 * s.Wins / s.GamesPlayed
}

// PlayerSummary is everything computed for one player.
type PlayerSummary struct {
	Name string
	// Total is nil when the player never played.
	Total *WindowStats
	// Windows is indexed by window index; nil where the player was absent.
	Windows []*WindowStats
}

// Summary is the output of the statistics engine.
type Summary struct {
	Sessions   int
	WindowSize int
	Windows    []Window
	Players    []PlayerSummary
}
