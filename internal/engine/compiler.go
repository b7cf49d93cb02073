// Package engine lowers a parsed pattern into an executable pipeline and
// evaluates it against a stream of input values.
package engine

import (
	"regexp"
	"strconv"

	"github.com/rewcli/rew/internal/filter"
)

// CompiledInvocation is one filter call with its arguments already parsed
// into their typed BoundArg form.
type CompiledInvocation struct {
	Spec *filter.Spec
	Args []filter.BoundArg
	Span filter.Range
}

// CompiledExpression is a filter chain plus the stable id used to key its
// local counter.
type CompiledExpression struct {
	ID          int
	Chain       []CompiledInvocation
	IsGenerator bool
	Span        filter.Range
}

// CompiledSegment is either literal text or a compiled expression.
type CompiledSegment struct {
	Literal string
	Expr    *CompiledExpression
}

// Pipeline is the immutable result of compiling a pattern: ready to
// evaluate against any number of input lines.
type Pipeline struct {
	Segments []CompiledSegment
	Source   string
}

// Compiler binds a parsed Pattern's filter names to filter.Spec entries
// and parses every argument into its typed form, once, at compile time.
type Compiler struct {
	registry *filter.Registry
	nextID   int
}

// NewCompiler builds a Compiler resolving filter names against registry.
func NewCompiler(registry *filter.Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Compile lowers pat into an executable Pipeline.
func (c *Compiler) Compile(pat *filter.Pattern) (*Pipeline, error) {
	segs := make([]CompiledSegment, 0, len(pat.Segments))
	for _, seg := range pat.Segments {
		if seg.IsLiteral() {
			segs = append(segs, CompiledSegment{Literal: seg.Literal})
			continue
		}
		expr, err := c.compileExpression(seg.Expr)
		if err != nil {
			return nil, err
		}
		segs = append(segs, CompiledSegment{Expr: expr})
	}
	return &Pipeline{Segments: segs, Source: pat.Source}, nil
}

func (c *Compiler) compileExpression(expr *filter.Expression) (*CompiledExpression, error) {
	id := c.nextID
	c.nextID++

	chain := make([]CompiledInvocation, 0, len(expr.Chain))
	isGenerator := false
	for _, inv := range expr.Chain {
		ci, err := c.compileInvocation(inv)
		if err != nil {
			return nil, err
		}
		if ci.Spec != nil && ci.Spec.IsGenerator {
			isGenerator = true
		}
		chain = append(chain, ci)
	}
	return &CompiledExpression{ID: id, Chain: chain, IsGenerator: isGenerator, Span: expr.SourceSpan}, nil
}

func (c *Compiler) compileInvocation(inv filter.FilterInvocation) (CompiledInvocation, error) {
	if inv.Name == "" {
		// The {} input-substitution shorthand: a single-filter chain with
		// no implementation, left as a nil Spec and handled specially by
		// the evaluator.
		return CompiledInvocation{Spec: nil, Span: inv.SourceSpan}, nil
	}

	spec, ok := c.registry.Lookup(inv.Name)
	if !ok {
		return CompiledInvocation{}, filter.NewBindError(inv.SourceSpan, "unknown filter %q", inv.Name)
	}
	if err := spec.CheckArity(len(inv.Args)); err != nil {
		return CompiledInvocation{}, filter.NewBindError(inv.SourceSpan, "%v", err)
	}

	args := make([]filter.BoundArg, len(inv.Args))
	for i, arg := range inv.Args {
		kind := filter.ArgText
		if i < len(spec.Args) {
			kind = spec.Args[i].Kind
		}
		bound, err := c.bindArgument(kind, arg)
		if err != nil {
			return CompiledInvocation{}, err
		}
		args[i] = bound
	}
	return CompiledInvocation{Spec: spec, Args: args, Span: inv.SourceSpan}, nil
}

func (c *Compiler) bindArgument(kind filter.ArgKind, arg filter.Argument) (filter.BoundArg, error) {
	if kind != filter.ArgPattern && arg.SubPattern != nil {
		return filter.BoundArg{}, filter.NewBindError(arg.SourceSpan, "this argument does not accept a nested {...} expression")
	}

	switch kind {
	case filter.ArgText:
		return filter.BoundArg{Text: arg.Text}, nil
	case filter.ArgInt:
		n, err := strconv.Atoi(arg.Text)
		if err != nil {
			return filter.BoundArg{}, filter.NewArgumentError(arg.SourceSpan, "invalid integer %q", arg.Text)
		}
		return filter.BoundArg{Int: n}, nil
	case filter.ArgIndex:
		n, err := strconv.Atoi(arg.Text)
		if err != nil {
			return filter.BoundArg{}, filter.NewArgumentError(arg.SourceSpan, "invalid integer %q", arg.Text)
		}
		if n == 0 {
			return filter.BoundArg{}, filter.NewArgumentError(arg.SourceSpan, "index 0 is not allowed (positions are 1-based)")
		}
		return filter.BoundArg{Int: n}, nil
	case filter.ArgRange:
		rng, err := filter.ParseRange(arg.Text)
		if err != nil {
			return filter.BoundArg{}, filter.NewArgumentError(arg.SourceSpan, "%v", err)
		}
		return filter.BoundArg{Range: rng}, nil
	case filter.ArgRegex:
		re, err := regexp.Compile(arg.Text)
		if err != nil {
			return filter.BoundArg{}, filter.NewArgumentError(arg.SourceSpan, "invalid regular expression %q: %v", arg.Text, err)
		}
		return filter.BoundArg{Regex: re}, nil
	case filter.ArgPattern:
		// No builtin filter currently declares ArgPattern; reaching here
		// means the registry advertises a kind no compiler path supports.
		return filter.BoundArg{}, filter.NewBindError(arg.SourceSpan, "nested pattern arguments are not supported by any registered filter")
	default:
		return filter.BoundArg{}, filter.NewBindError(arg.SourceSpan, "unsupported argument kind")
	}
}
