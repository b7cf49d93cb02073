package engine

import (
	"testing"

	"github.com/rewcli/rew/internal/filter"
)

func compile(t *testing.T, src string) *Pipeline {
	t.Helper()
	pat, err := filter.ParsePattern(src, filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", src, err)
	}
	pipe, err := NewCompiler(filter.Builtins()).Compile(pat)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return pipe
}

func TestCompileUnknownFilter(t *testing.T) {
	pat, err := filter.ParsePattern("{nope}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected a bind error for an unknown filter name")
	}
	ferr, ok := err.(*filter.Error)
	if !ok || ferr.Kind != filter.BindError {
		t.Fatalf("got %v, want a BindError", err)
	}
}

func TestCompileArityError(t *testing.T) {
	pat, err := filter.ParsePattern("{field}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected an arity error: field requires an index argument")
	}
}

func TestCompileBadIntArgument(t *testing.T) {
	pat, err := filter.ParsePattern("{field:abc}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected an argument error for a non-integer field index")
	}
	ferr, ok := err.(*filter.Error)
	if !ok || ferr.Kind != filter.ArgumentError {
		t.Fatalf("got %v, want an ArgumentError", err)
	}
}

func TestCompileZeroFieldIndexRejected(t *testing.T) {
	pat, err := filter.ParsePattern("{field:0}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected an argument error: field positions are 1-based, 0 is invalid")
	}
	ferr, ok := err.(*filter.Error)
	if !ok || ferr.Kind != filter.ArgumentError {
		t.Fatalf("got %v, want an ArgumentError", err)
	}
}

func TestCompileZeroRegexSplitIndexRejected(t *testing.T) {
	pat, err := filter.ParsePattern("{regex-split:,:0}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected an argument error: regex-split positions are 1-based, 0 is invalid")
	}
	ferr, ok := err.(*filter.Error)
	if !ok || ferr.Kind != filter.ArgumentError {
		t.Fatalf("got %v, want an ArgumentError", err)
	}
}

func TestCompileBadRegexArgument(t *testing.T) {
	pat, err := filter.ParsePattern("{regex-match:[:1}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected an argument error for an invalid regular expression")
	}
}

func TestCompileSubPatternRejectedByTextArg(t *testing.T) {
	pat, err := filter.ParsePattern("{replace:{upper}:x}", filter.DefaultMetachars())
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	_, err = NewCompiler(filter.Builtins()).Compile(pat)
	if err == nil {
		t.Fatal("expected a bind error: replace's 'from' argument forbids a nested expression")
	}
	ferr, ok := err.(*filter.Error)
	if !ok || ferr.Kind != filter.BindError {
		t.Fatalf("got %v, want a BindError", err)
	}
}

func TestCompileAssignsDistinctExpressionIDs(t *testing.T) {
	pipe := compile(t, "{upper}-{lower}")
	var ids []int
	for _, seg := range pipe.Segments {
		if seg.Expr != nil {
			ids = append(ids, seg.Expr.ID)
		}
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("expected two distinct expression ids, got %v", ids)
	}
}

func TestCompileRegexPrecompiled(t *testing.T) {
	pipe := compile(t, "{regex-match:a(b)c:1}")
	inv := pipe.Segments[0].Expr.Chain[0]
	if inv.Args[0].Regex == nil {
		t.Fatal("expected the regex argument to be compiled at compile time")
	}
}

func TestCompileEmptyShorthand(t *testing.T) {
	pipe := compile(t, "{}")
	inv := pipe.Segments[0].Expr.Chain[0]
	if inv.Spec != nil {
		t.Fatalf("expected a nil Spec for the {} shorthand, got %v", inv.Spec)
	}
}
