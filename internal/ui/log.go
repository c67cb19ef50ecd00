package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/imgajeed76/homeview/internal/ui/styles"
)

var verbose atomic.Bool

// diagnostics is where Verbosef writes. Tests swap it.
var diagnostics io.Writer = os.Stderr

// SetVerbose enables diagnostics on stderr.
func SetVerbose(v bool) { verbose.Store(v) }

// Verbose reports whether diagnostics are enabled.
func Verbose() bool { return verbose.Load() }

// Verbosef prints a muted diagnostic line when verbose output is enabled.
func Verbosef(format string, a ...any) {
	if !verbose.Load() {
		return
	}
	fmt.Fprintln(diagnostics, styles.MutedMsg(fmt.Sprintf(format, a...)))
}
