package filter

import (
	"fmt"
	"strings"
)

func registerFieldFilters(r *Registry) {
	r.Register(Spec{
		Name: "field",
		Args: []ArgSpec{{Name: "index", Kind: ArgIndex}, {Name: "sep", Kind: ArgText, Optional: true}},
		Impl: fieldOne,
	})
	r.Register(Spec{
		Name: "fields",
		Args: []ArgSpec{{Name: "range", Kind: ArgRange}, {Name: "sep", Kind: ArgText, Optional: true}},
		Impl: fieldRange,
	})
}

func fieldSep(args []BoundArg, idx int) string {
	if len(args) > idx && args[idx].Text != "" {
		return args[idx].Text
	}
	return "\t"
}

func fieldOne(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	n := args[0].Int
	parts := strings.Split(input, fieldSep(args, 1))
	i := n - 1
	if n < 0 {
		i = len(parts) + n
	}
	if i < 0 || i >= len(parts) {
		return nil, fmt.Errorf("field index %d out of range (input has %d fields)", n, len(parts))
	}
	return []string{parts[i]}, nil
}

func fieldRange(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	sep := fieldSep(args, 1)
	parts := strings.Split(input, sep)
	lo, hi := args[0].Range.Resolve(len(parts))
	return []string{strings.Join(parts[lo:hi], sep)}, nil
}
