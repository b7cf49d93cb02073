package filter

import (
	"fmt"
	"regexp"
)

// ArgKind tells the compiler how to parse an argument's source text (or, for
// ArgPattern, its nested expression) into the typed form a filter expects.
// Parsing happens once at compile time; filters never see raw argument text.
type ArgKind int

const (
	ArgText ArgKind = iota
	ArgInt
	ArgIndex
	ArgRange
	ArgRegex
	ArgPattern
)

// ArgSpec describes one positional argument accepted by a filter.
type ArgSpec struct {
	Name     string
	Kind     ArgKind
	Optional bool
}

// BoundArg is an argument after compile-time parsing: exactly one of its
// fields is meaningful, selected by the ArgSpec's Kind.
type BoundArg struct {
	Text  string
	Int   int
	Range RangeSpec
	Regex *regexp.Regexp
}

// Impl is the runtime implementation of a filter: given the current value
// and its bound, already-parsed arguments, it returns the filter's
// result(s). A filter normally returns exactly one value; generator filters
// may return more than one, which the evaluator Cartesian-expands across the
// rest of the chain.
type Impl func(ctx *EvalContext, input string, args []BoundArg) ([]string, error)

// Spec is a filter's registration record: its canonical name, any aliases,
// its argument shape, and whether it is a generator.
type Spec struct {
	Name        string
	Aliases     []string
	Args        []ArgSpec
	IsGenerator bool
	Impl        Impl
}

func (s Spec) minArgs() int {
	n := 0
	for _, a := range s.Args {
		if !a.Optional {
			n++
		}
	}
	return n
}

func (s Spec) maxArgs() int {
	return len(s.Args)
}

// Registry resolves filter names (canonical or alias) to their Spec.
type Registry struct {
	byName map[string]*Spec
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Spec)}
}

// Register adds spec under its canonical name and all aliases. It panics on
// a duplicate name, since that can only happen due to a programming error in
// the builtin table, never from user input.
func (r *Registry) Register(spec Spec) {
	names := append([]string{spec.Name}, spec.Aliases...)
	for _, n := range names {
		if _, exists := r.byName[n]; exists {
			panic(fmt.Sprintf("filter: duplicate registration for name %q", n))
		}
		r.byName[n] = &spec
	}
}

// Lookup resolves name to its Spec, or reports ok=false if unknown.
func (r *Registry) Lookup(name string) (*Spec, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// CheckArity validates that argc arguments satisfy spec's arity bounds,
// returning a descriptive error otherwise.
func (s Spec) CheckArity(argc int) error {
	min, max := s.minArgs(), s.maxArgs()
	switch {
	case argc < min:
		return fmt.Errorf("filter %q requires at least %d argument(s), got %d", s.Name, min, argc)
	case argc > max:
		return fmt.Errorf("filter %q accepts at most %d argument(s), got %d", s.Name, max, argc)
	}
	return nil
}

// Builtins returns the registry of all built-in filters.
func Builtins() *Registry {
	r := NewRegistry()
	registerPathFilters(r)
	registerSubstringFilters(r)
	registerFieldFilters(r)
	registerReplaceFilters(r)
	registerRegexFilters(r)
	registerFormatFilters(r)
	registerGeneratorFilters(r)
	return r
}
