// Package diagnostics renders compile-time and runtime pattern errors,
// either as caret-pointed human text or as a machine-readable export.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/rewcli/rew/internal/filter"
)

// Report is the exportable form of a pattern error, serialized by
// --diagnostics-format.
type Report struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
}

// FromError converts a *filter.Error into its exportable Report form.
func FromError(err *filter.Error) Report {
	return Report{Kind: string(err.Kind), Message: err.Message, Start: err.Span.Start, End: err.Span.End}
}

// Format selects a machine-readable export encoding.
type Format string

const (
	FormatNone Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Export writes report to w in the given format. FormatNone is a no-op.
func Export(w io.Writer, format Format, report Report) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(report)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(report)
	default:
		return nil
	}
}

// Renderer prints caret-pointed human diagnostics, styled when stderr is a
// TTY and NO_COLOR is unset.
type Renderer struct {
	source  string
	styled  bool
	errMsg  lipgloss.Style
	caret   lipgloss.Style
	dim     lipgloss.Style
}

// NewRenderer builds a Renderer over source, the original pattern text.
func NewRenderer(source string, fd uintptr, noColor bool) *Renderer {
	styled := !noColor && isatty.IsTerminal(fd)
	r := &Renderer{source: source, styled: styled}
	if styled {
		r.errMsg = lipgloss.NewStyle().Bold(true)
		r.caret = lipgloss.NewStyle().Bold(true)
		r.dim = lipgloss.NewStyle().Faint(true)
	}
	return r
}

// RenderCompileError formats err as: the pattern source line, a caret
// underline beneath the offending byte range, and a one-line message.
func (r *Renderer) RenderCompileError(err *filter.Error) string {
	var b strings.Builder
	msg := fmt.Sprintf("%s: %s", err.Kind, err.Message)
	if r.styled {
		msg = r.errMsg.Render(msg)
	}
	fmt.Fprintln(&b, msg)

	line := r.source
	if r.styled {
		line = r.dim.Render(line)
	}
	fmt.Fprintln(&b, line)

	start, end := clampSpan(err.Span, len(r.source))
	caret := strings.Repeat(" ", start) + strings.Repeat("^", max1(end-start))
	if r.styled {
		caret = r.caret.Render(caret)
	}
	fmt.Fprintln(&b, caret)
	return b.String()
}

// RenderRuntimeError formats a one-line EvalError report including the
// offending (possibly truncated) input value. err's message already
// names the filter that failed.
func (r *Renderer) RenderRuntimeError(input string, err error) string {
	const maxInput = 80
	shown := input
	if len(shown) > maxInput {
		shown = shown[:maxInput] + "..."
	}
	msg := fmt.Sprintf("eval: %v (input %q)", err, shown)
	if r.styled {
		return r.errMsg.Render(msg)
	}
	return msg
}

func clampSpan(span filter.Range, n int) (int, int) {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
