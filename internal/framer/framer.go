// Package framer emits evaluated values to an output stream according to
// the configured framing mode and terminator policy.
package framer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Mode selects one of the three output framings.
type Mode int

const (
	Standard Mode = iota
	Diff
	Pretty
)

// Terminator is the byte sequence appended after each emitted value in
// standard and diff mode.
type Terminator struct {
	Text string // empty means "no terminator" (--print-raw)
}

var (
	LF  = Terminator{Text: "\n"}
	NUL = Terminator{Text: "\x00"}
	Raw = Terminator{Text: ""}
)

// Framer writes evaluated (input, output) pairs to w per Mode.
type Framer struct {
	w            *bufio.Writer
	mode         Mode
	term         Terminator
	noPrintEnd   bool
	diffMarkerIn lipgloss.Style
	diffMarkerOut lipgloss.Style
}

// New builds a Framer writing to w. When fd is a TTY and NO_COLOR is unset,
// the diff-mode '<' marker is dimmed and the '>' marker bolded; otherwise
// both render as plain text.
func New(w io.Writer, mode Mode, term Terminator, noPrintEnd bool, fd uintptr, noColor bool) *Framer {
	colorize := !noColor && isatty.IsTerminal(fd)
	in := lipgloss.NewStyle()
	out := lipgloss.NewStyle()
	if colorize {
		in = in.Faint(true)
		out = out.Bold(true)
	}
	return &Framer{
		w:             bufio.NewWriter(w),
		mode:          mode,
		term:          term,
		noPrintEnd:    noPrintEnd,
		diffMarkerIn:  in,
		diffMarkerOut: out,
	}
}

// Emit writes one (input, output) pair. isLast indicates this is the final
// value of the entire run, for --no-print-end handling in standard mode.
func (f *Framer) Emit(input, output string, isLast bool) error {
	switch f.mode {
	case Diff:
		if _, err := fmt.Fprint(f.w, f.diffMarkerIn.Render("<"), input, f.term.Text); err != nil {
			return err
		}
		_, err := fmt.Fprint(f.w, f.diffMarkerOut.Render(">"), output, f.term.Text)
		return err
	case Pretty:
		_, err := fmt.Fprintf(f.w, "%s -> %s\n", input, output)
		return err
	default:
		if isLast && f.noPrintEnd {
			_, err := fmt.Fprint(f.w, output)
			return err
		}
		_, err := fmt.Fprint(f.w, output, f.term.Text)
		return err
	}
}

// Flush flushes any buffered output.
func (f *Framer) Flush() error {
	return f.w.Flush()
}
