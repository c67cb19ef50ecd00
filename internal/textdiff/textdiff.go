// Package textdiff compares two renderings of a view line by line.
//
// The interactive host uses it to report how much of the output changed
// after a control moved, and tests use Unified to print readable
// mismatches between renders that should be identical.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats summarise the line-level difference between two texts.
type Stats struct {
	Added   int // lines present only in the new text
	Removed int // lines present only in the old text
	Regions int // contiguous changed regions
}

// Changed reports whether any line differs.
func (s Stats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

func (s Stats) String() string {
	if !s.Changed() {
		return "no changes"
	}
	regions := "regions"
	if s.Regions == 1 {
		regions = "region"
	}
	return fmt.Sprintf("+%d -%d lines in %d %s", s.Added, s.Removed, s.Regions, regions)
}

// Compare computes line-level change counts from before to after.
func Compare(before, after string) Stats {
	var st Stats
	for _, r := range computeEditRegions(splitLines(before), splitLines(after)) {
		st.Removed += r.baseEnd - r.baseStart
		st.Added += r.sideEnd - r.sideStart
		st.Regions++
	}
	return st
}

// Unified returns before and after interleaved with "-", "+" and " "
// prefixes. Identical inputs produce an empty string.
func Unified(before, after string) string {
	baseLines := splitLines(before)
	sideLines := splitLines(after)
	regions := computeEditRegions(baseLines, sideLines)
	if len(regions) == 0 {
		return ""
	}

	var sb strings.Builder
	basePos := 0
	for _, r := range regions {
		for ; basePos < r.baseStart; basePos++ {
			sb.WriteString("  " + baseLines[basePos] + "\n")
		}
		for _, l := range baseLines[r.baseStart:r.baseEnd] {
			sb.WriteString("- " + l + "\n")
		}
		for _, l := range sideLines[r.sideStart:r.sideEnd] {
			sb.WriteString("+ " + l + "\n")
		}
		basePos = r.baseEnd
	}
	for ; basePos < len(baseLines); basePos++ {
		sb.WriteString("  " + baseLines[basePos] + "\n")
	}
	return sb.String()
}

// splitLines splits text into lines. The trailing newline (if any) is stripped
// so that "foo\nbar\n" and "foo\nbar" both produce ["foo", "bar"].
// An empty string returns an empty slice.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// editRegion covers base lines [baseStart, baseEnd) which were replaced by
// the lines [sideStart, sideEnd) in the modified version.
type editRegion struct {
	baseStart int
	baseEnd   int
	sideStart int
	sideEnd   int
}

// computeEditRegions diffs base against side and groups consecutive
// insertions and deletions into contiguous edit regions.
func computeEditRegions(base, side []string) []editRegion {
	dmp := diffmatchpatch.New()

	baseText := strings.Join(base, "\n")
	sideText := strings.Join(side, "\n")
	if baseText == sideText {
		return nil
	}

	// Terminate every line so the last one diffs like the others.
	if len(base) > 0 {
		baseText += "\n"
	}
	if len(side) > 0 {
		sideText += "\n"
	}

	chars1, chars2, lineArray := dmp.DiffLinesToRunes(baseText, sideText)
	diffs := dmp.DiffMainRunes(chars1, chars2, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var regions []editRegion
	basePos := 0
	sidePos := 0

	i := 0
	for i < len(diffs) {
		d := diffs[i]

		if d.Type == diffmatchpatch.DiffEqual {
			n := countLines(d.Text)
			basePos += n
			sidePos += n
			i++
			continue
		}

		regionBaseStart := basePos
		regionSideStart := sidePos

		for i < len(diffs) && diffs[i].Type != diffmatchpatch.DiffEqual {
			switch diffs[i].Type {
			case diffmatchpatch.DiffDelete:
				basePos += countLines(diffs[i].Text)
			case diffmatchpatch.DiffInsert:
				sidePos += countLines(diffs[i].Text)
			}
			i++
		}

		regions = append(regions, editRegion{
			baseStart: regionBaseStart,
			baseEnd:   basePos,
			sideStart: regionSideStart,
			sideEnd:   sidePos,
		})
	}

	return regions
}

// countLines counts the number of lines in a diff text chunk.
// go-diff's DiffCharsToLines produces text where each "char" was originally
// a full line (with its trailing newline). So "foo\nbar\n" = 2 lines.
// A chunk without trailing newline like "foo" is also 1 line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if text[len(text)-1] != '\n' {
		n++
	}
	return n
}
