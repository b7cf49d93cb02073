package filter

import (
	"fmt"
	"strings"
)

func registerRegexFilters(r *Registry) {
	r.Register(Spec{
		Name: "regex-match", Aliases: []string{"mR"},
		Args: []ArgSpec{{Name: "pattern", Kind: ArgRegex}, {Name: "group", Kind: ArgInt, Optional: true}},
		Impl: regexMatch,
	})
	r.Register(Spec{
		Name: "regex-replace", Aliases: []string{"sR"},
		Args: []ArgSpec{{Name: "pattern", Kind: ArgRegex}, {Name: "repl", Kind: ArgText}},
		Impl: regexReplaceFirst,
	})
	r.Register(Spec{
		Name: "regex-replace-all", Aliases: []string{"SR"},
		Args: []ArgSpec{{Name: "pattern", Kind: ArgRegex}, {Name: "repl", Kind: ArgText}},
		Impl: regexReplaceAll,
	})
	r.Register(Spec{
		Name: "regex-split", Aliases: []string{"xR"},
		Args: []ArgSpec{{Name: "pattern", Kind: ArgRegex}, {Name: "index", Kind: ArgIndex}},
		Impl: regexSplit,
	})
}

func regexMatch(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	re := args[0].Regex
	group := 0
	if len(args) > 1 {
		group = args[1].Int
	}
	m := re.FindStringSubmatch(input)
	if m == nil {
		return []string{""}, nil
	}
	if group < 0 || group >= len(m) {
		return nil, fmt.Errorf("regex-match: group %d out of range (pattern has %d groups)", group, len(m)-1)
	}
	return []string{m[group]}, nil
}

func regexReplaceFirst(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	re, repl := args[0].Regex, args[1].Text
	loc := re.FindStringSubmatchIndex(input)
	if loc == nil {
		return []string{input}, nil
	}
	expanded := expandBackrefs(input, loc, repl)
	return []string{input[:loc[0]] + expanded + input[loc[1]:]}, nil
}

func regexReplaceAll(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	re, repl := args[0].Regex, args[1].Text
	matches := re.FindAllStringSubmatchIndex(input, -1)
	if matches == nil {
		return []string{input}, nil
	}
	var buf strings.Builder
	prev := 0
	for _, loc := range matches {
		buf.WriteString(input[prev:loc[0]])
		buf.WriteString(expandBackrefs(input, loc, repl))
		prev = loc[1]
	}
	buf.WriteString(input[prev:])
	return []string{buf.String()}, nil
}

// regexSplit returns the INDEX-th segment (1-based, negatives from the end)
// produced by splitting input on every match of the regex.
func regexSplit(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	re, n := args[0].Regex, args[1].Int
	parts := re.Split(input, -1)
	i := n - 1
	if n < 0 {
		i = len(parts) + n
	}
	if i < 0 || i >= len(parts) {
		return nil, fmt.Errorf("regex-split index %d out of range (split produced %d segments)", n, len(parts))
	}
	return []string{parts[i]}, nil
}

// expandBackrefs expands $0..$9 and $$ in repl against a single match
// described by loc (as returned by FindStringSubmatchIndex).
func expandBackrefs(input string, loc []int, repl string) string {
	var buf strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) {
			next := repl[i+1]
			switch {
			case next == '$':
				buf.WriteByte('$')
				i++
				continue
			case next >= '0' && next <= '9':
				g := int(next - '0')
				if 2*g+1 < len(loc) && loc[2*g] >= 0 {
					buf.WriteString(input[loc[2*g]:loc[2*g+1]])
				}
				i++
				continue
			}
		}
		buf.WriteByte(repl[i])
	}
	return buf.String()
}
