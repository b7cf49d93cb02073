package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const defaultRandomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func registerGeneratorFilters(r *Registry) {
	r.Register(Spec{
		Name: "global-counter", Aliases: []string{"c"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strconv.FormatInt(ctx.NextGlobal(), 10)}, nil
		},
	})
	r.Register(Spec{
		Name: "local-counter", Aliases: []string{"C"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strconv.FormatInt(ctx.NextLocal(), 10)}, nil
		},
	})
	r.Register(Spec{
		Name: "sequence", Aliases: []string{"rs"},
		Args:        []ArgSpec{{Name: "range", Kind: ArgRange}, {Name: "step", Kind: ArgInt, Optional: true}},
		IsGenerator: true,
		Impl:        generatorSequence,
	})
	r.Register(Spec{
		Name: "random-int", Aliases: []string{"ri"},
		Args: []ArgSpec{{Name: "range", Kind: ArgRange}},
		Impl: generatorRandomInt,
	})
	r.Register(Spec{
		Name: "random-text", Aliases: []string{"rt"},
		Args: []ArgSpec{{Name: "length", Kind: ArgInt}, {Name: "alphabet", Kind: ArgText, Optional: true}},
		Impl: generatorRandomText,
	})
	r.Register(Spec{
		Name: "uuid", Aliases: []string{"uu"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{uuid.New().String()}, nil
		},
	})
}

// generatorSequence expects A..B (inclusive, both ends required) and an
// optional step, defaulting to +1 if A<=B and -1 otherwise. It returns the
// whole finite progression; the evaluator Cartesian-expands over it.
func generatorSequence(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	rng := args[0].Range
	if !rng.HasStart || !rng.HasEnd {
		return nil, fmt.Errorf("sequence requires both bounds, e.g. 1..3")
	}
	from, to := rng.Start, rng.End
	step := 1
	if from > to {
		step = -1
	}
	if len(args) > 1 && args[1].Int != 0 {
		step = args[1].Int
	}
	if step == 0 {
		return nil, fmt.Errorf("sequence step must not be 0")
	}
	var out []string
	if step > 0 {
		for v := from; v <= to; v += step {
			out = append(out, strconv.Itoa(v))
		}
	} else {
		for v := from; v >= to; v += step {
			out = append(out, strconv.Itoa(v))
		}
	}
	return out, nil
}

func generatorRandomInt(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	rng := args[0].Range
	if !rng.HasStart || !rng.HasEnd {
		return nil, fmt.Errorf("random-int requires both bounds, e.g. 1..100")
	}
	lo, hi := rng.Start, rng.End
	if lo > hi {
		lo, hi = hi, lo
	}
	n := ctx.Rand().IntN(hi-lo+1) + lo
	return []string{strconv.Itoa(n)}, nil
}

func generatorRandomText(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	length := args[0].Int
	if length < 0 {
		return nil, fmt.Errorf("random-text length must not be negative")
	}
	alphabet := defaultRandomAlphabet
	if len(args) > 1 && args[1].Text != "" {
		alphabet = args[1].Text
	}
	runes := []rune(alphabet)
	if len(runes) == 0 {
		return nil, fmt.Errorf("random-text alphabet must not be empty")
	}
	var buf strings.Builder
	for i := 0; i < length; i++ {
		buf.WriteRune(runes[ctx.Rand().IntN(len(runes))])
	}
	return []string{buf.String()}, nil
}
