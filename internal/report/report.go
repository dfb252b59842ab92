package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/scoresheet-metrics/internal/model"
)

// Metric names one row of every report table.
type Metric string

const (
	GamesPlayed       Metric = "games_played"
	GainSum           Metric = "gain_sum"
	TurnGainRange     Metric = "turn_gain_range"
	SessionScoreRange Metric = "session_score_range"
	WinCount          Metric = "win_count"
)

// Metrics is the fixed row schema, in display order.
var Metrics = []Metric{GamesPlayed, GainSum, TurnGainRange, SessionScoreRange, WinCount}

// Label returns the row header shown for m.
func (m Metric) Label() string {
	switch m {
	case GamesPlayed:
		return "Games played"
	case GainSum:
		return "Gain sum"
	case TurnGainRange:
		return "Turn gain (min, mean, max)"
	case SessionScoreRange:
		return "End score (min, mean, max)"
	case WinCount:
		return "Winning games (%)"
	default:
		return string(m)
	}
}

// placeholder is shown for a statistic over an empty collection.
const placeholder = "—"

// Table is one rendered block: a caption, the players present in its range
// and one row of cells per metric, aligned with Players.
type Table struct {
	Caption string
	Window  *model.Window // nil for the overall table
	Players []string
	Rows    map[Metric][]string
}

// Row returns the cells of metric m.
func (t Table) Row(m Metric) []string { return t.Rows[m] }

// Build turns a summary into the overall table followed by one table per
// window. Players with no games in a range are left out of its table.
func Build(sum *model.Summary) []Table {
	overall := newTable(fmt.Sprintf("All sessions (1~%d)", sum.Sessions), nil)
	for _, p := range sum.Players {
		if p.Total != nil {
			overall.add(p.Name, *p.Total)
		}
	}
	out := []Table{overall}

	for i := range sum.Windows {
		w := sum.Windows[i]
		t := newTable(fmt.Sprintf("Sessions %d~%d", w.Start+1, w.End), &w)
		for _, p := range sum.Players {
			if ws := p.Windows[i]; ws != nil && ws.GamesPlayed > 0 {
				t.add(p.Name, *ws)
			}
		}
		out = append(out, t)
	}
	return out
}

func newTable(caption string, w *model.Window) Table {
	rows := make(map[Metric][]string, len(Metrics))
	for _, m := range Metrics {
		rows[m] = []string{}
	}
	return Table{Caption: caption, Window: w, Players: []string{}, Rows: rows}
}

func (t *Table) add(player string, s model.WindowStats) {
	t.Players = append(t.Players, player)
	for _, m := range Metrics {
		t.Rows[m] = append(t.Rows[m], Cell(m, s))
	}
}

// Cell formats one statistic.
func Cell(m Metric, s model.WindowStats) string {
	switch m {
	case GamesPlayed:
		return strconv.Itoa(s.GamesPlayed)
	case GainSum:
		return strconv.Itoa(s.GainSum)
	case TurnGainRange:
		return FormatRange(s.TurnGain)
	case SessionScoreRange:
		return FormatRange(s.EndScore)
	case WinCount:
		return fmt.Sprintf("%d (%d%%)", s.Wins, s.WinPct())
	default:
		return placeholder
	}
}

// FormatRange renders (min, mean, max) with the mean to two decimals.
func FormatRange(r model.Range) string {
	if !r.Valid {
		return placeholder
	}
	return fmt.Sprintf("(%.0f, %.2f, %.0f)", r.Min, r.Mean, r.Max)
}

var captionStyle = lipgloss.NewStyle().Bold(true)

// Render writes every table to w, separated by blank lines.
func Render(w io.Writer, tables []Table) {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		RenderTable(w, t)
	}
}

// RenderTable writes one table with its caption underneath.
func RenderTable(w io.Writer, t Table) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := make([]any, 0, len(t.Players)+1)
	header = append(header, "METRIC \\ PLAYER")
	for _, p := range t.Players {
		header = append(header, p)
	}
	table.Header(header...)

	for _, m := range Metrics {
		row := make([]any, 0, len(t.Players)+1)
		row = append(row, m.Label())
		for _, c := range t.Row(m) {
			row = append(row, c)
		}
		table.Append(row...)
	}
	table.Render()
	fmt.Fprintln(w, captionStyle.Render(t.Caption))
}

// PrintGame prints one scored game: a row per turn, then the end scores.
func PrintGame(w io.Writer, g *model.Game) {
	fmt.Fprintf(w, "\nScoresheet: %s  |  Players: %d  |  Turns: %d\n\n", g.Source, len(g.Players), len(g.Turns))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := []any{"TURN"}
	for _, p := range g.Players {
		header = append(header, p)
	}
	table.Header(header...)

	for i, turn := range g.Turns {
		row := []any{strconv.Itoa(i + 1)}
		for _, v := range turn {
			row = append(row, strconv.Itoa(v))
		}
		table.Append(row...)
	}
	footer := []any{"END"}
	for _, s := range g.EndScores() {
		footer = append(footer, strconv.Itoa(s))
	}
	table.Append(footer...)
	table.Render()
}
