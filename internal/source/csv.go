package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
)

// LoadCSV reads the CSV file at path.
func LoadCSV(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads a header row followed by data rows and infers a kind for
// every column. Blank header cells become "Unnamed: i" and repeated
// names get a ".n" suffix. Bytes that are not valid UTF-8 are read as
// Latin-1.
func ReadCSV(r io.Reader) (*frame.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, util.ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := headerNames(header)

	cells := make([][]string, len(names))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for j, c := range rec {
			cells[j] = append(cells[j], util.ToValidUTF8(c))
		}
	}

	cols := make([]*frame.Column, len(names))
	for j, name := range names {
		cols[j] = Infer(name, cells[j])
	}
	return frame.New(cols...)
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range util.ToValidUTF8Slice(header) {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}
