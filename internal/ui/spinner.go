package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/homeview/internal/ui/styles"
	"golang.org/x/term"
)

// Spinner animates a message on stderr while a table loads. Stdout is
// left untouched so rendered views can be piped.
type Spinner struct {
	message string
	w       io.Writer
	done    chan struct{}
	wg      sync.WaitGroup
	animate bool
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		w:       os.Stderr,
		done:    make(chan struct{}),
		animate: !styles.IsAccessible() && term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start begins the animation. In accessible mode or without a terminal
// only verbose runs print a static line.
func (s *Spinner) Start() {
	if !s.animate {
		Verbosef("%s...", s.message)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.done:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s", styles.Render(style, frames[i%len(frames)]), s.message)
			}
		}
	}()
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.wg.Wait()
}

// Success stops the spinner and reports msg when verbose.
func (s *Spinner) Success(msg string) {
	s.Stop()
	Verbosef("%s", styles.SuccessMsg(msg))
}

// Error stops the spinner and prints msg.
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(s.w, styles.ErrorMsg(msg))
}
