package window

import (
	"slices"
	"testing"

	"github.com/pable/scoresheet-metrics/internal/history"
	"github.com/pable/scoresheet-metrics/internal/model"
)

func TestPartition_SixtySessions(t *testing.T) {
	ws, err := Partition(60, 25)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	want := []model.Window{
		{Index: 0, Start: 0, End: 25},
		{Index: 1, Start: 25, End: 50},
		{Index: 2, Start: 50, End: 60},
	}
	if !slices.Equal(ws, want) {
		t.Fatalf("got %+v, want %+v", ws, want)
	}
	if ws[2].Len() != 10 {
		t.Errorf("last window length: got %d, want 10", ws[2].Len())
	}
}

func TestPartition_Edges(t *testing.T) {
	cases := []struct {
		n, size int
		windows int
	}{
		{50, 25, 2},
		{0, 25, 0},
		{1, 25, 1},
		{26, 25, 2},
	}
	for _, c := range cases {
		ws, err := Partition(c.n, c.size)
		if err != nil {
			t.Errorf("Partition(%d, %d): %v", c.n, c.size, err)
			continue
		}
		if len(ws) != c.windows {
			t.Errorf("Partition(%d, %d): %d windows, want %d", c.n, c.size, len(ws), c.windows)
		}
	}

	ws, _ := Partition(1, 25)
	if ws[0].Len() != 1 {
		t.Errorf("single session window length: got %d", ws[0].Len())
	}
	if _, err := Partition(10, 0); err == nil {
		t.Error("expected an error for window size 0")
	}
	if _, err := Partition(-1, 5); err == nil {
		t.Error("expected an error for a negative session count")
	}
}

func TestPresenceMap_LateJoiner(t *testing.T) {
	s := history.NewStore()
	ab := &model.Game{Players: []string{"A", "B"}, Turns: [][]int{{1, -1}}}
	abc := &model.Game{Players: []string{"A", "B", "C"}, Turns: [][]int{{2, -1, -1}}}
	games := []*model.Game{ab, ab, ab, abc, abc}
	for i, g := range games {
		if err := s.Append(g, i); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := s.Align(len(games)); err != nil {
		t.Fatalf("Align: %v", err)
	}

	ws, err := Partition(s.Sessions(), 3)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(ws) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(ws))
	}

	pm := PresenceMap(s, ws)
	if !slices.Equal(pm["A"], []bool{true, true}) {
		t.Errorf("A presence: got %v", pm["A"])
	}
	if !slices.Equal(pm["C"], []bool{false, true}) {
		t.Errorf("C presence: got %v", pm["C"])
	}
}

func TestSlice_ShortHistory(t *testing.T) {
	h := []model.Session{model.Present([]int{1})}
	if got := Slice(h, model.Window{Start: 0, End: 5}); len(got) != 1 {
		t.Errorf("window past the history end: got %d sessions, want 1", len(got))
	}
	if got := Slice(h, model.Window{Start: 5, End: 10}); got != nil {
		t.Errorf("window beyond the history: got %v, want nil", got)
	}
	if Present(h, model.Window{Start: 1, End: 3}) {
		t.Error("no present session in [1, 3)")
	}
}
