package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imgajeed76/homeview/internal/frame"
)

func sample() *frame.Table {
	value, _ := frame.NewColumn("HomeValue", frame.KindFloat, []frame.Value{
		frame.Float(1250.5), frame.Null(frame.KindFloat), frame.Float(90),
	})
	return frame.MustNew(frame.Strings("StateName", "CA", "TX", "NY"), value)
}

func TestNewGrid_IndexFirst(t *testing.T) {
	g := NewGrid(sample())
	if got := strings.Join(g.Columns, ","); got != ",StateName,HomeValue" {
		t.Fatalf("columns = %q", got)
	}
	if got := strings.Join(g.Rows[1], ","); got != "1,TX,NaN" {
		t.Fatalf("row 1 = %q", got)
	}
	if !g.Null[1][2] || g.Null[0][2] {
		t.Fatalf("null mask = %v", g.Null)
	}
	if g.Numeric[1] || !g.Numeric[2] {
		t.Fatalf("numeric mask = %v", g.Numeric)
	}
}

func TestWritePlain_AlignsNumbersRight(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlain(&buf, NewGrid(sample()), true); err != nil {
		t.Fatalf("WritePlain: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"   StateName  HomeValue",
		"─  ─────────  ─────────",
		"0  CA            1250.5",
		"1  TX               NaN",
		"2  NY              90.0",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d:\n got %q\nwant %q", i, lines[i], w)
		}
	}
	if !strings.Contains(buf.String(), "(3 rows)") {
		t.Fatalf("missing footer:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	tbl := frame.MustNew(frame.Strings("StateName", "CA"), frame.Ints("SizeRank", 3))
	var buf bytes.Buffer
	if err := WriteJSON(&buf, tbl); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0]["StateName"] != "CA" || got[0]["SizeRank"] != float64(3) {
		t.Fatalf("decoded = %v", got)
	}
}

func TestWriteJSON_NullAndIndex(t *testing.T) {
	pt, err := sample().Pivot(frame.PivotSpec{Index: "StateName", Values: "HomeValue", Agg: frame.AggCount})
	if err != nil {
		t.Fatalf("Pivot: %v", err)
	}
	var buf bytes.Buffer
	_ = WriteJSON(&buf, pt)
	if !strings.Contains(buf.String(), `"StateName": "TX"`) {
		t.Fatalf("index missing from JSON:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Austin", 10, "Austin"},
		{"San Francisco", 8, "San F..."},
		{"Zürich", 3, "Zür"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func press(m browser, keys ...string) browser {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(browser)
	}
	return m
}

func TestBrowser_NavigateAndSearch(t *testing.T) {
	m := newBrowser("home_values", NewGrid(sample()))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(browser)

	m = press(m, "down", "down", "down", "right")
	if m.cursor != 2 || m.colCursor != 1 {
		t.Fatalf("cursor = (%d, %d), want (2, 1)", m.cursor, m.colCursor)
	}

	m = press(m, "/", "t", "x", "enter")
	if m.rowCount() != 1 || m.rowAt(0) != 1 {
		t.Fatalf("search for tx matched %v", m.matches)
	}
	if !strings.Contains(m.View(), "1/3 rows") {
		t.Fatalf("header does not show the filtered count:\n%s", m.View())
	}

	m = press(m, "/", "esc")
	if m.matches != nil || m.query != "" {
		t.Fatal("esc should clear the search")
	}
}

func TestBrowser_ExportQuits(t *testing.T) {
	m := newBrowser("t", NewGrid(sample()))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("P")})
	if next.(browser).export != exportPlain || cmd == nil {
		t.Fatal("P should request a plain export and quit")
	}
}
