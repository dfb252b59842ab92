package parser

import (
	"errors"
	"testing"
)

func TestParse_TwoPlayers(t *testing.T) {
	text := "2\nA\nB\n1000 -1000\n-500 500\n200 -200\n"
	g, err := Parse("s1.mss", text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Players) != 2 || g.Players[0] != "A" || g.Players[1] != "B" {
		t.Fatalf("roster: got %v", g.Players)
	}
	if len(g.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(g.Turns))
	}
	colA := g.Column(0)
	want := []int{1000, -500, 200}
	for i := range want {
		if colA[i] != want[i] {
			t.Errorf("A turn %d: want %d, got %d", i, want[i], colA[i])
		}
	}
	ends := g.EndScores()
	if ends[0] != 30700 || ends[1] != 29300 {
		t.Errorf("end scores: got %v", ends)
	}
	if g.Source != "s1.mss" {
		t.Errorf("source: got %q", g.Source)
	}
}

func TestParse_NoTurns(t *testing.T) {
	g, err := Parse("", "3\nA\nB\nC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Turns) != 0 {
		t.Errorf("expected no turns, got %d", len(g.Turns))
	}
}

func TestParse_CRLF(t *testing.T) {
	g, err := Parse("", "2\r\nA\r\nB\r\n100 -100\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Players[1] != "B" || g.Turns[0][1] != -100 {
		t.Errorf("CRLF not handled: %+v", g)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
		line int
	}{
		{"empty", "", 1},
		{"count not int", "two\nA\nB", 1},
		{"count zero", "0\n", 1},
		{"count negative", "-2\nA\nB", 1},
		{"missing players", "3\nA\nB", 0},
		{"duplicate player", "2\nA\nA", 3},
		{"short row", "2\nA\nB\n100", 4},
		{"long row", "2\nA\nB\n100 -50 -50", 4},
		{"non-integer", "2\nA\nB\n100 x", 4},
		{"float", "2\nA\nB\n1.5 -1.5", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("bad.mss", tc.text)
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Line != tc.line {
				t.Errorf("line: want %d, got %d (%v)", tc.line, pe.Line, err)
			}
			if pe.Source != "bad.mss" {
				t.Errorf("source: got %q", pe.Source)
			}
		})
	}
}
