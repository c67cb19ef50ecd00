// Package table renders a frame.Table as text. It supports an interactive
// TUI browser (search, column expand, copy), plain aligned tables, JSON
// output and raw tab-separated output.
//
// Widget displays use the plain writer for table blocks; `homeview show`
// uses Display to browse a whole source table.
package table

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/imgajeed76/homeview/internal/frame"
	"golang.org/x/term"
)

// DisplayOptions controls how a table is rendered.
type DisplayOptions struct {
	// JSON outputs rows as a JSON array of objects.
	JSON bool
	// Raw outputs tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
}

// Grid is a table flattened to display strings. The index column, when
// the table carries one, is the first column.
type Grid struct {
	Columns []string
	Rows    [][]string
	// Numeric marks right-aligned columns.
	Numeric []bool
	// Null marks missing cells, parallel to Rows.
	Null [][]bool
}

// NewGrid flattens t. A table without an index gets an unnamed label
// column holding the row positions.
func NewGrid(t *frame.Table) Grid {
	cols := t.Columns()
	g := Grid{
		Columns: make([]string, 0, len(cols)+1),
		Numeric: make([]bool, 0, len(cols)+1),
		Rows:    make([][]string, t.Len()),
		Null:    make([][]bool, t.Len()),
	}

	idx := t.Index()
	g.Columns = append(g.Columns, t.IndexName())
	g.Numeric = append(g.Numeric, idx == nil || idx.Kind().Numeric())
	for _, c := range cols {
		g.Columns = append(g.Columns, c.Name())
		g.Numeric = append(g.Numeric, c.Kind().Numeric())
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]string, 0, len(g.Columns))
		nulls := make([]bool, 0, len(g.Columns))
		row = append(row, t.Label(i))
		nulls = append(nulls, idx != nil && idx.Value(i).Null)
		for _, c := range cols {
			v := c.Value(i)
			row = append(row, v.String())
			nulls = append(nulls, v.Null)
		}
		g.Rows[i] = row
		g.Null[i] = nulls
	}
	return g
}

// Display picks the output mode from opts and the environment, then
// renders t to w. The title is shown in the TUI header only.
func Display(w io.Writer, title string, t *frame.Table, opts DisplayOptions) error {
	g := NewGrid(t)

	if opts.Raw {
		return WriteRaw(w, g)
	}
	if opts.JSON {
		return WriteJSON(w, t)
	}

	f, isFile := w.(*os.File)
	isTTY := isFile && term.IsTerminal(int(f.Fd()))

	if !isTTY || opts.NoPager || len(g.Rows) == 0 {
		return WritePlain(w, g, true)
	}
	return RunTableTUI(w, title, t)
}

// WriteRaw writes one tab-separated line per row, without a header.
func WriteRaw(w io.Writer, g Grid) error {
	for _, row := range g.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
