// Package parser decodes the text emitted by the external scorer into a
// model.Game.
//
// The format is line oriented:
//
//	<n>
//	<player 1>
//	...
//	<player n>
//	<gain 1> ... <gain n>     (zero or more turn rows)
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/scoresheet-metrics/internal/model"
)

// ParseError reports malformed scorer output.
type ParseError struct {
	Source string // file the text was produced for, may be empty
	Line   int    // 1-based, 0 when not tied to a line
	Msg    string
}

func (e *ParseError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = "scorer output"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", loc, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

// Parse decodes scorer text. source only labels errors and the returned game.
func Parse(source, text string) (*model.Game, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	fail := func(line int, format string, args ...any) error {
		return &ParseError{Source: source, Line: line, Msg: fmt.Sprintf(format, args...)}
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fail(1, "player count %q is not an integer", lines[0])
	}
	if n <= 0 {
		return nil, fail(1, "player count must be positive, got %d", n)
	}
	if len(lines) < n+1 {
		return nil, fail(0, "expected %d player lines, got %d", n, len(lines)-1)
	}

	game := &model.Game{Source: source, Players: make([]string, 0, n)}
	seen := make(map[string]struct{}, n)
	for i := 1; i <= n; i++ {
		name := strings.TrimSpace(lines[i])
		if name == "" {
			return nil, fail(i+1, "empty player identifier")
		}
		if _, dup := seen[name]; dup {
			return nil, fail(i+1, "duplicate player %q", name)
		}
		seen[name] = struct{}{}
		game.Players = append(game.Players, name)
	}

	for i := n + 1; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue // blank separator lines carry no turn
		}
		if len(fields) != n {
			return nil, fail(i+1, "turn row has %d values, want %d", len(fields), n)
		}
		row := make([]int, n)
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fail(i+1, "value %q is not an integer", f)
			}
			row[j] = v
		}
		game.Turns = append(game.Turns, row)
	}
	return game, nil
}
