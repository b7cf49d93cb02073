package engine

import "github.com/rewcli/rew/internal/filter"

// Evaluator applies a compiled Pipeline to a stream of input values, one
// call to Eval per input line. State that persists across lines (counters,
// the PRNG) lives in the shared filter.EvalContext.
type Evaluator struct {
	pipeline *Pipeline
	ctx      *filter.EvalContext
}

// NewEvaluator builds an Evaluator over pipeline, threading ctx across
// every call to Eval.
func NewEvaluator(pipeline *Pipeline, ctx *filter.EvalContext) *Evaluator {
	return &Evaluator{pipeline: pipeline, ctx: ctx}
}

// generatorAxis is one expression's precomputed fan-out: the finite set of
// values its generator filter produced for this input line, plus the chain
// suffix (filters after the generator) still to run per emission.
type generatorAxis struct {
	expr     *CompiledExpression
	segIndex int
	values   []string
	suffix   []CompiledInvocation
}

// Eval evaluates input, returning one output value, or more than one if the
// pattern contains a generator expression (Cartesian-expanded across every
// generator present, in left-to-right, outermost-slowest order).
func (e *Evaluator) Eval(input string) ([]string, error) {
	axes, err := e.collectGeneratorAxes(input)
	if err != nil {
		return nil, err
	}

	total := 1
	for _, ax := range axes {
		total *= len(ax.values)
	}
	if total == 0 {
		return nil, nil
	}

	outputs := make([]string, total)
	radii := make([]int, len(axes))
	for i, ax := range axes {
		radii[i] = len(ax.values)
	}

	for emission := 0; emission < total; emission++ {
		indices := mixedRadixDigits(emission, radii)
		out, err := e.renderEmission(input, axes, indices)
		if err != nil {
			return nil, err
		}
		outputs[emission] = out
	}
	return outputs, nil
}

// collectGeneratorAxes evaluates just the generator-producing prefix of
// every generator expression in the pattern, once per input line.
func (e *Evaluator) collectGeneratorAxes(input string) ([]generatorAxis, error) {
	var axes []generatorAxis
	for i, seg := range e.pipeline.Segments {
		if seg.Expr == nil || !seg.Expr.IsGenerator {
			continue
		}
		genPos := -1
		for j, inv := range seg.Expr.Chain {
			if inv.Spec != nil && inv.Spec.IsGenerator {
				genPos = j
				break
			}
		}
		if genPos == -1 {
			continue // compiler marked it a generator but none found; treat as ordinary
		}

		e.ctx.SetExprID(seg.Expr.ID)
		pre, err := e.evalChain(seg.Expr.Chain[:genPos], input)
		if err != nil {
			return nil, err
		}
		values, err := seg.Expr.Chain[genPos].Spec.Impl(e.ctx, pre, seg.Expr.Chain[genPos].Args)
		if err != nil {
			return nil, filter.NewEvalError(seg.Expr.Chain[genPos].Span, "%v", err)
		}
		axes = append(axes, generatorAxis{
			expr:     seg.Expr,
			segIndex: i,
			values:   values,
			suffix:   seg.Expr.Chain[genPos+1:],
		})
	}
	return axes, nil
}

// renderEmission builds one output value: literal segments copy through
// unchanged, non-generator expressions are evaluated fresh (so counters and
// random filters advance once per emission), and generator expressions
// replay only their suffix against the axis value selected by indices.
func (e *Evaluator) renderEmission(input string, axes []generatorAxis, indices []int) (string, error) {
	axisBySeg := make(map[int]int, len(axes))
	for i, ax := range axes {
		axisBySeg[ax.segIndex] = i
	}

	var out []byte
	for i, seg := range e.pipeline.Segments {
		if seg.Expr == nil {
			out = append(out, seg.Literal...)
			continue
		}
		if ai, ok := axisBySeg[i]; ok {
			ax := axes[ai]
			picked := ax.values[indices[ai]]
			e.ctx.SetExprID(ax.expr.ID)
			v, err := e.evalChain(ax.suffix, picked)
			if err != nil {
				return "", err
			}
			out = append(out, v...)
			continue
		}
		e.ctx.SetExprID(seg.Expr.ID)
		v, err := e.evalChain(seg.Expr.Chain, input)
		if err != nil {
			return "", err
		}
		out = append(out, v...)
	}
	return string(out), nil
}

// evalChain runs a filter chain left to right. An invocation with a nil
// Spec is the "{}" input-substitution shorthand: identity.
func (e *Evaluator) evalChain(chain []CompiledInvocation, initial string) (string, error) {
	cur := initial
	for _, inv := range chain {
		if inv.Spec == nil {
			continue
		}
		results, err := inv.Spec.Impl(e.ctx, cur, inv.Args)
		if err != nil {
			return "", filter.NewEvalError(inv.Span, "%s: %v", inv.Spec.Name, err)
		}
		if len(results) == 0 {
			return "", filter.NewEvalError(inv.Span, "%s produced no value", inv.Spec.Name)
		}
		cur = results[0]
	}
	return cur, nil
}

// mixedRadixDigits decomposes n into one digit per axis given each axis's
// radix (its value count), with the first axis as the most significant
// (slowest-varying) digit.
func mixedRadixDigits(n int, radii []int) []int {
	digits := make([]int, len(radii))
	for i := len(radii) - 1; i >= 0; i-- {
		digits[i] = n % radii[i]
		n /= radii[i]
	}
	return digits
}
