package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
var titleCaser = cases.Title(language.English, cases.Compact)

func registerFormatFilters(r *Registry) {
	r.Register(Spec{
		Name: "upper", Aliases: []string{"u"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strings.ToUpper(input)}, nil
		},
	})
	r.Register(Spec{
		Name: "lower", Aliases: []string{"l", "v"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{strings.ToLower(input)}, nil
		},
	})
	r.Register(Spec{
		Name: "ascii", Aliases: []string{"i"},
		Impl: formatASCII,
	})
	r.Register(Spec{
		Name: "title", Aliases: []string{"y"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			return []string{titleCaser.String(input)}, nil
		},
	})
	r.Register(Spec{
		Name: "reverse", Aliases: []string{"z"},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			runes := []rune(input)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return []string{string(runes)}, nil
		},
	})
	r.Register(Spec{
		Name: "repeat", Aliases: []string{"*"},
		Args: []ArgSpec{{Name: "count", Kind: ArgInt}},
		Impl: func(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
			n := args[0].Int
			if n < 0 {
				return nil, fmt.Errorf("repeat count must not be negative")
			}
			return []string{strings.Repeat(input, n)}, nil
		},
	})
	r.Register(Spec{
		Name: "int-format", Aliases: []string{"k"},
		Args: []ArgSpec{{Name: "width", Kind: ArgInt}, {Name: "char", Kind: ArgText, Optional: true}},
		Impl: formatIntPad,
	})
}

func formatASCII(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	out, _, err := transform.String(asciiTransform, input)
	if err != nil {
		return nil, fmt.Errorf("ascii: %w", err)
	}
	return []string{out}, nil
}

func formatIntPad(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("int-format: %q is not an integer", input)
	}
	width := args[0].Int
	if width < 0 {
		return nil, fmt.Errorf("int-format: width must not be negative")
	}
	pad := "0"
	if len(args) > 1 && args[1].Text != "" {
		pad = args[1].Text
	}
	sign := ""
	digits := strconv.Itoa(n)
	if n < 0 {
		sign = "-"
		digits = digits[1:]
	}
	for len(sign)+len(digits) < width {
		digits = pad + digits
	}
	return []string{sign + digits}, nil
}
