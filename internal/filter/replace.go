package filter

import "strings"

func registerReplaceFilters(r *Registry) {
	r.Register(Spec{
		Name: "replace", Aliases: []string{"r"},
		Args: []ArgSpec{{Name: "from", Kind: ArgText}, {Name: "to", Kind: ArgText, Optional: true}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			from, to := args[0].Text, argText(args, 1)
			return []string{strings.Replace(input, from, to, 1)}, nil
		},
	})
	r.Register(Spec{
		Name: "replace-all", Aliases: []string{"R"},
		Args: []ArgSpec{{Name: "from", Kind: ArgText}, {Name: "to", Kind: ArgText, Optional: true}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			from, to := args[0].Text, argText(args, 1)
			return []string{strings.ReplaceAll(input, from, to)}, nil
		},
	})
	r.Register(Spec{
		Name: "replace-empty", Aliases: []string{"?"},
		Args: []ArgSpec{{Name: "to", Kind: ArgText}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			if input == "" {
				return []string{args[0].Text}, nil
			}
			return []string{input}, nil
		},
	})
}

func argText(args []BoundArg, i int) string {
	if i < len(args) {
		return args[i].Text
	}
	return ""
}
