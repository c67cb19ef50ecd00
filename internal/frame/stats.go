package frame

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// DescribeRows are the statistics produced by Describe, in order.
var DescribeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe summarises every numeric column: non-null count, mean, sample
// standard deviation, min, quartiles and max. Quartiles use linear
// interpolation between closest ranks.
func (t *Table) Describe() (*Table, error) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, ErrNoNumericColumns
	}

	cols := make([]*Column, 0, len(numeric))
	for _, name := range numeric {
		c, _ := t.Column(name)
		vals := c.Floats()
		sort.Float64s(vals)

		stats := []float64{
			float64(len(vals)),
			mean(vals),
			stddev(vals),
			quantile(vals, 0),
			quantile(vals, 0.25),
			quantile(vals, 0.5),
			quantile(vals, 0.75),
			quantile(vals, 1),
		}
		cols = append(cols, Floats(name, stats...))
	}

	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	return out.WithIndex(Strings("", DescribeRows...))
}

// Info writes a schema report: entry count, index range, and one line per
// column with its non-null count and kind.
func (t *Table) Info(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("<homeview frame.Table>\n")
	if t.rows == 0 {
		sb.WriteString("Index: 0 entries\n")
	} else if t.index == nil {
		fmt.Fprintf(&sb, "RangeIndex: %d entries, 0 to %d\n", t.rows, t.rows-1)
	} else {
		fmt.Fprintf(&sb, "Index: %d entries, %s to %s\n", t.rows, t.Label(0), t.Label(t.rows-1))
	}
	fmt.Fprintf(&sb, "Data columns (total %d columns):\n", len(t.cols))

	nameWidth := len("Column")
	for _, c := range t.cols {
		nameWidth = max(nameWidth, len(c.name))
	}
	countWidth := len("Non-Null Count")

	fmt.Fprintf(&sb, " %-3s %-*s  %-*s  %s\n", "#", nameWidth, "Column", countWidth, "Non-Null Count", "Kind")
	fmt.Fprintf(&sb, " %-3s %-*s  %-*s  %s\n", "---", nameWidth, strings.Repeat("-", 6), countWidth, strings.Repeat("-", countWidth), "-----")

	kinds := make(map[Kind]int)
	for i, c := range t.cols {
		kinds[c.kind]++
		count := fmt.Sprintf("%d non-null", c.NonNull())
		fmt.Fprintf(&sb, " %-3d %-*s  %-*s  %s\n", i, nameWidth, c.name, countWidth, count, c.kind)
	}

	order := []Kind{KindBool, KindFloat, KindInt, KindString, KindTime}
	var parts []string
	for _, k := range order {
		if n := kinds[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s(%d)", k, n))
		}
	}
	fmt.Fprintf(&sb, "kinds: %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&sb, "memory usage: %s\n", formatBytes(t.memoryUsage()))

	_, err := io.WriteString(w, sb.String())
	return err
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stddev(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// memoryUsage approximates the bytes held by cell values.
func (t *Table) memoryUsage() int64 {
	const cell = 8
	var n int64
	for _, c := range t.cols {
		for _, v := range c.values {
			n += cell
			if s, ok := v.Raw.(string); ok {
				n += int64(len(s))
			}
		}
	}
	return n
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
