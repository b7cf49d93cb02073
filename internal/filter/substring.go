package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func registerSubstringFilters(r *Registry) {
	r.Register(Spec{
		Name: "substring", Aliases: []string{"n"},
		Args: []ArgSpec{{Name: "range", Kind: ArgRange}},
		Impl: substringChars,
	})
	r.Register(Spec{
		Name: "substring-bytes", Aliases: []string{"N"},
		Args: []ArgSpec{{Name: "range", Kind: ArgRange}},
		Impl: substringBytes,
	})
	r.Register(Spec{
		Name: "prepend", Aliases: []string{"<"},
		Args: []ArgSpec{{Name: "text", Kind: ArgText}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{args[0].Text + input}, nil
		},
	})
	r.Register(Spec{
		Name: "append", Aliases: []string{">"},
		Args: []ArgSpec{{Name: "text", Kind: ArgText}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{input + args[0].Text}, nil
		},
	})
	r.Register(Spec{
		Name: "pad-left", Aliases: []string{"pl"},
		Args: []ArgSpec{{Name: "width", Kind: ArgInt}, {Name: "char", Kind: ArgText, Optional: true}},
		Impl: padLeft,
	})
	r.Register(Spec{
		Name: "pad-right", Aliases: []string{"L"},
		Args: []ArgSpec{{Name: "width", Kind: ArgInt}, {Name: "char", Kind: ArgText, Optional: true}},
		Impl: padRight,
	})
	r.Register(Spec{
		Name: "trim", Aliases: []string{"t"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strings.TrimSpace(input)}, nil
		},
	})
	r.Register(Spec{
		Name: "trim-start", Aliases: []string{"ts"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strings.TrimLeft(input, " \t\r\n\v\f")}, nil
		},
	})
	r.Register(Spec{
		Name: "trim-end", Aliases: []string{"te"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strings.TrimRight(input, " \t\r\n\v\f")}, nil
		},
	})
}

func substringChars(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	runes := []rune(input)
	lo, hi := args[0].Range.Resolve(len(runes))
	return []string{string(runes[lo:hi])}, nil
}

// substringBytes slices raw bytes; a range that lands inside a multi-byte
// UTF-8 sequence is a runtime error rather than silently producing invalid
// text. A bound sitting exactly at len(input) is always a valid boundary,
// not a cut.
func substringBytes(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	lo, hi := args[0].Range.Resolve(len(input))
	if (lo < len(input) && !utf8.RuneStart(input[lo])) || (hi < len(input) && !utf8.RuneStart(input[hi])) {
		return nil, fmt.Errorf("byte range [%d, %d) cuts a UTF-8 sequence", lo, hi)
	}
	out := input[lo:hi]
	if !utf8.ValidString(out) {
		return nil, fmt.Errorf("byte range [%d, %d) is not valid UTF-8", lo, hi)
	}
	return []string{out}, nil
}

func padLeft(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	width, pad, err := padArgs(args)
	if err != nil {
		return nil, err
	}
	n := utf8.RuneCountInString(input)
	if n >= width {
		return []string{input}, nil
	}
	return []string{strings.Repeat(pad, width-n) + input}, nil
}

func padRight(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	width, pad, err := padArgs(args)
	if err != nil {
		return nil, err
	}
	n := utf8.RuneCountInString(input)
	if n >= width {
		return []string{input}, nil
	}
	return []string{input + strings.Repeat(pad, width-n)}, nil
}

func padArgs(args []BoundArg) (width int, pad string, err error) {
	width = args[0].Int
	if width < 0 {
		return 0, "", fmt.Errorf("width must not be negative")
	}
	pad = " "
	if len(args) > 1 && args[1].Text != "" {
		pad = args[1].Text
	}
	if utf8.RuneCountInString(pad) != 1 {
		return 0, "", fmt.Errorf("pad character must be exactly one character, got %q", pad)
	}
	return width, pad, nil
}
