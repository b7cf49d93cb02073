package filter

import (
	"os"
	"path/filepath"
	"strings"
)

func registerPathFilters(r *Registry) {
	r.Register(Spec{Name: "working-directory", Aliases: []string{"w"}, Impl: pathWorkingDirectory})
	r.Register(Spec{Name: "absolute", Aliases: []string{"a"}, Impl: pathAbsolute})
	r.Register(Spec{Name: "relative", Aliases: []string{"A"}, Impl: pathRelative})
	r.Register(Spec{Name: "parent", Aliases: []string{"d"}, Impl: pathParent})
	r.Register(Spec{Name: "file-name", Aliases: []string{"f"}, Impl: pathFileName})
	r.Register(Spec{Name: "last-name", Aliases: []string{"F"}, Impl: pathLastName})
	r.Register(Spec{Name: "base-name", Aliases: []string{"b"}, Impl: pathBaseName})
	r.Register(Spec{Name: "extension", Aliases: []string{"e"}, Impl: pathExtension})
	r.Register(Spec{Name: "extension-with-dot", Aliases: []string{"E"}, Impl: pathExtensionWithDot})
	r.Register(Spec{Name: "parent-name", Aliases: []string{"D"}, Impl: pathParentName})
	r.Register(Spec{Name: "prefix-parent", Aliases: []string{"P"}, Impl: pathPrefixParent})
	r.Register(Spec{Name: "without-extension", Aliases: []string{"B"}, Impl: pathWithoutExtension})
	r.Register(Spec{Name: "without-last-extension", Impl: pathWithoutLastExtension})
}

func pathWorkingDirectory(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return []string{wd}, nil
}

func pathAbsolute(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, err
	}
	return []string{filepath.Clean(abs)}, nil
}

func pathRelative(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(wd, input)
	if err != nil {
		return nil, err
	}
	return []string{rel}, nil
}

// pathParent returns the parent directory. Of a root, filepath.Dir already
// returns the root itself, matching the documented behavior.
func pathParent(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	return []string{filepath.Dir(input)}, nil
}

func pathFileName(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	return []string{filepath.Base(input)}, nil
}

// pathLastName strips only the final extension from the file name.
func pathLastName(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	name := filepath.Base(input)
	ext := filepath.Ext(name)
	return []string{strings.TrimSuffix(name, ext)}, nil
}

// pathBaseName strips every extension from the file name, e.g.
// "archive.tar.gz" becomes "archive".
func pathBaseName(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	name := filepath.Base(input)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return []string{name[:i]}, nil
	}
	return []string{name}, nil
}

func pathExtension(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	ext := filepath.Ext(filepath.Base(input))
	return []string{strings.TrimPrefix(ext, ".")}, nil
}

func pathExtensionWithDot(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	return []string{filepath.Ext(filepath.Base(input))}, nil
}

func pathParentName(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	return []string{filepath.Base(filepath.Dir(input))}, nil
}

// pathPrefixParent returns the parent directory joined with the last-name
// (final-extension-stripped) file name, i.e. the path with only the final
// extension removed.
func pathPrefixParent(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if dir == "." {
		return []string{stem}, nil
	}
	return []string{filepath.Join(dir, stem)}, nil
}

// pathWithoutExtension strips every extension, keeping the directory
// component intact.
func pathWithoutExtension(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if dir == "." {
		return []string{name}, nil
	}
	return []string{filepath.Join(dir, name)}, nil
}

// pathWithoutLastExtension strips only the final extension, keeping the
// directory component intact.
func pathWithoutLastExtension(ctx *EvalContext, input string, args []BoundArg) ([]string, error) {
	dir := filepath.Dir(input)
	name := filepath.Base(input)
	ext := filepath.Ext(name)
	name = strings.TrimSuffix(name, ext)
	if dir == "." {
		return []string{name}, nil
	}
	return []string{filepath.Join(dir, name)}, nil
}
