package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rewcli/rew/internal/filter"
)

func TestRenderCompileErrorPointsAtSpan(t *testing.T) {
	src := "{field:x}"
	err := filter.NewArgumentError(filter.Range{Start: 7, End: 8}, "invalid integer %q", "x")
	r := NewRenderer(src, 0, true)
	out := r.RenderCompileError(err)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	if lines[1] != src {
		t.Errorf("source line = %q, want %q", lines[1], src)
	}
	if lines[2] != strings.Repeat(" ", 7)+"^" {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestRenderRuntimeErrorTruncatesLongInput(t *testing.T) {
	r := NewRenderer("{field:5}", 0, true)
	longInput := strings.Repeat("x", 200)
	out := r.RenderRuntimeError(longInput, filter.NewEvalError(filter.Range{}, "boom"))
	if strings.Contains(out, strings.Repeat("x", 200)) {
		t.Error("expected the input to be truncated in the rendered message")
	}
	if !strings.Contains(out, "...") {
		t.Error("expected a truncation marker")
	}
}

func TestFromErrorAndExportJSON(t *testing.T) {
	err := filter.NewBindError(filter.Range{Start: 1, End: 4}, "unknown filter %q", "nope")
	report := FromError(err)
	if report.Kind != "bind" || report.Start != 1 || report.End != 4 {
		t.Errorf("unexpected report: %+v", report)
	}

	var buf bytes.Buffer
	if err := Export(&buf, FormatJSON, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind":"bind"`) {
		t.Errorf("expected JSON export to include the kind field, got %q", buf.String())
	}
}

func TestExportFormatNoneIsNoop(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatNone, Report{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
