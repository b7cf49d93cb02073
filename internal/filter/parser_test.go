package filter

import "testing"

func TestParsePatternSegments(t *testing.T) {
	pat, err := ParsePattern("img_{c}.{e|l|r:e}", DefaultMetachars())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pat.Segments) != 4 {
		t.Fatalf("got %d segments, want 4: %+v", len(pat.Segments), pat.Segments)
	}
	if !pat.Segments[0].IsLiteral() || pat.Segments[0].Literal != "img_" {
		t.Errorf("segment 0 = %+v", pat.Segments[0])
	}
	if pat.Segments[1].IsLiteral() {
		t.Errorf("segment 1 should be an expression")
	}
	if len(pat.Segments[1].Expr.Chain) != 1 || pat.Segments[1].Expr.Chain[0].Name != "c" {
		t.Errorf("segment 1 chain = %+v", pat.Segments[1].Expr.Chain)
	}
	if !pat.Segments[2].IsLiteral() || pat.Segments[2].Literal != "." {
		t.Errorf("segment 2 = %+v", pat.Segments[2])
	}
	chain := pat.Segments[3].Expr.Chain
	if len(chain) != 3 || chain[0].Name != "e" || chain[1].Name != "l" || chain[2].Name != "r" {
		t.Errorf("segment 3 chain = %+v", chain)
	}
	if len(chain[2].Args) != 1 || chain[2].Args[0].Text != "e" {
		t.Errorf("replace arg = %+v", chain[2].Args)
	}
}

func TestParseEmptyShorthand(t *testing.T) {
	pat, err := ParsePattern("{}", DefaultMetachars())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain := pat.Segments[0].Expr.Chain
	if len(chain) != 1 || chain[0].Name != "" {
		t.Errorf("expected a single empty-name filter, got %+v", chain)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated expression", "{f"},
		{"trailing pipe", "{f|}"},
		{"stray colon", "{:f}"},
		{"empty chain link", "{f||g}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePattern(tt.src, DefaultMetachars()); err == nil {
				t.Fatalf("expected a parse error for %q", tt.src)
			}
		})
	}
}

func TestParseLiteralColonAndPipeOutsideExpression(t *testing.T) {
	pat, err := ParsePattern("note: a|b {f}", DefaultMetachars())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pat.Segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(pat.Segments), pat.Segments)
	}
	if !pat.Segments[0].IsLiteral() || pat.Segments[0].Literal != "note: a|b " {
		t.Errorf("segment 0 = %+v", pat.Segments[0])
	}
}

func TestParseNestedExpressionArgument(t *testing.T) {
	pat, err := ParsePattern("{r:{f}:x}", DefaultMetachars())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chain := pat.Segments[0].Expr.Chain
	if len(chain) != 1 || chain[0].Name != "r" {
		t.Fatalf("chain = %+v", chain)
	}
	args := chain[0].Args
	if len(args) != 2 {
		t.Fatalf("args = %+v", args)
	}
	if args[0].SubPattern == nil {
		t.Errorf("expected arg 0 to carry a nested sub-pattern")
	}
	if args[1].Text != "x" {
		t.Errorf("expected arg 1 to be the literal %q, got %+v", "x", args[1])
	}
}

func TestPatternSourceRoundTrip(t *testing.T) {
	src := "img_{c}.{e|l}"
	pat, err := ParsePattern(src, DefaultMetachars())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pat.Source != src {
		t.Errorf("Source = %q, want %q", pat.Source, src)
	}
}
