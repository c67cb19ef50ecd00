package ui

import (
	"bytes"
	"testing"
)

func TestVerbosef(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	old := diagnostics
	diagnostics = &buf
	t.Cleanup(func() {
		diagnostics = old
		SetVerbose(false)
	})

	Verbosef("loaded %d rows", 3)
	if buf.Len() != 0 {
		t.Fatalf("quiet run printed %q", buf.String())
	}

	SetVerbose(true)
	Verbosef("loaded %d rows", 3)
	if got := buf.String(); got != "loaded 3 rows\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	s := NewSpinner("Loading")
	s.Start()
	s.Stop()
	s.Stop()
}
