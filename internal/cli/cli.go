package cli

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rewcli/rew/internal/config"
	"github.com/rewcli/rew/internal/diagnostics"
	"github.com/rewcli/rew/internal/engine"
	"github.com/rewcli/rew/internal/filter"
	"github.com/rewcli/rew/internal/framer"
)

const version = "0.1.0"

// Run is the main entry point. Returns the process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	flags, remaining, err := ParseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rew: %v\n", err)
		return 2
	}

	if flags.Version {
		fmt.Printf("rew v%s\n", version)
		return 0
	}
	if flags.Help || len(remaining) == 0 {
		printUsage()
		return 0
	}

	if remaining[0] == "seq" {
		return runSeq(remaining[1:])
	}

	return runPattern(remaining[0], flags)
}

func runPattern(pattern string, flags Flags) int {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	meta := filter.DefaultMetachars()
	if flags.Escape != "" {
		meta.Escape = flags.Escape[0]
	} else if cfg.Pattern.Escape != "" {
		meta.Escape = cfg.Pattern.Escape[0]
	}

	pat, perr := filter.ParsePattern(pattern, meta)
	renderer := diagnostics.NewRenderer(pattern, os.Stderr.Fd(), flags.NoColor || !cfg.Output.Color)
	if perr != nil {
		return reportCompileError(renderer, flags, perr)
	}

	compiler := engine.NewCompiler(filter.Builtins())
	pipeline, cerr := compiler.Compile(pat)
	if cerr != nil {
		return reportCompileError(renderer, flags, cerr)
	}

	if flags.Explain {
		fmt.Print(diagnostics.Explain(pat))
		return 0
	}

	if flags.DryRun {
		fmt.Print(diagnostics.Explain(pat))
	}

	seed := osRandomSeed()
	if cfg.Output.Seed != nil {
		seed = *cfg.Output.Seed
	}
	if flags.HasSeed {
		seed = flags.Seed
	}
	ctx := filter.NewEvalContext(seed)
	evaluator := engine.NewEvaluator(pipeline, ctx)

	// With SIGPIPE ignored, a write to a closed stdout returns EPIPE
	// instead of the Go runtime killing the process, so isBrokenPipe below
	// can turn it into a clean exit.
	signal.Ignore(syscall.SIGPIPE)

	mode, term := resolveFraming(flags, cfg)
	fr := framer.New(os.Stdout, mode, term, flags.NoPrintEnd, os.Stdout.Fd(), flags.NoColor || !cfg.Output.Color)

	readSep := flags.Read
	if flags.ReadNUL {
		readSep = "\x00"
	}
	exitCode := 0
	failed := false
	brokenPipe := false

	err = splitInput(os.Stdin, readSep, flags.ReadRaw, func(line string, isLastLine bool) bool {
		outputs, everr := evaluator.Eval(line)
		if everr != nil {
			renderRuntimeError(renderer, line, everr)
			failed = true
			if flags.FailFast {
				exitCode = 1
				return false
			}
			return true
		}
		for i, out := range outputs {
			isLast := isLastLine && i == len(outputs)-1
			if werr := fr.Emit(line, out, isLast); werr != nil {
				if isBrokenPipe(werr) {
					brokenPipe = true
				} else {
					exitCode = 3
				}
				return false
			}
		}
		if flags.DryRun {
			return false
		}
		return true
	})
	if ferr := fr.Flush(); ferr != nil && !brokenPipe {
		if isBrokenPipe(ferr) {
			brokenPipe = true
		} else {
			exitCode = 3
		}
	}
	if brokenPipe {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rew: io: %v\n", err)
		return 3
	}
	if exitCode != 0 {
		return exitCode
	}
	if failed {
		return 1
	}
	return 0
}

// osRandomSeed draws a seed from the OS's entropy source, for runs that
// configure no fixed seed. Falling back to 0 on a read failure would make
// every such run deterministic again, defeating the point, but an entropy
// source failing is itself exotic enough to not warrant a second fallback
// tier; 0 here only ever fires on an unusable crypto/rand.
func osRandomSeed() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// isBrokenPipe reports whether err is a broken-pipe write failure (the
// reader end of a pipeline, e.g. `| head`, closed early). SIGPIPE during
// output is a clean shutdown, not a fatal IoError.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

func resolveFraming(flags Flags, cfg *config.Config) (framer.Mode, framer.Terminator) {
	mode := framer.Standard
	if flags.Diff {
		mode = framer.Diff
	} else if flags.Pretty {
		mode = framer.Pretty
	}

	term := framer.LF
	switch {
	case flags.PrintRaw:
		term = framer.Raw
	case flags.PrintNUL:
		term = framer.NUL
	case flags.Print != "":
		term = framer.Terminator{Text: flags.Print}
	case cfg.Output.Terminator == "nul":
		term = framer.NUL
	case cfg.Output.Terminator != "" && cfg.Output.Terminator != "lf":
		term = framer.Terminator{Text: cfg.Output.Terminator}
	}
	return mode, term
}

func reportCompileError(renderer *diagnostics.Renderer, flags Flags, err error) int {
	ferr, ok := err.(*filter.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "rew: %v\n", err)
		return 2
	}
	fmt.Fprint(os.Stderr, renderer.RenderCompileError(ferr))
	if flags.DiagFormat != "" {
		diagnostics.Export(os.Stderr, diagnostics.Format(flags.DiagFormat), diagnostics.FromError(ferr))
	}
	return 2
}

func renderRuntimeError(renderer *diagnostics.Renderer, input string, err error) {
	fmt.Fprintln(os.Stderr, renderer.RenderRuntimeError(input, err))
}

func printUsage() {
	usage := `rew v%s — line-oriented pattern rewriting filter

Usage: rew [OPTIONS] PATTERN
       rew seq [FROM..[TO]] [STEP]

Options:
  -T, --print STR        output terminator
  -Z, --print-nul        output terminator is NUL
  -R, --print-raw        no output terminator
  -L, --no-print-end     omit terminator after the last value
  -I, --read STR         input separator
  -0, --read-nul         input separator is NUL
  -r, --read-raw         treat stdin as a single value
  -b, --diff             diff output mode
  -p, --pretty           pretty output mode
  -e, --escape CHAR      override the escape metacharacter
      --seed N           seed the generator PRNG
      --fail-fast        exit on the first runtime error
      --explain          print the parsed pattern instead of running it
      --dry-run          evaluate only the first input value
      --diagnostics-format json|yaml
      --version          show version
  -h, --help             show this help

Examples:
  echo photo.JPEG | rew 'img_{c}.{e|l|r:e}'
  printf 'a/b.txt\nc.md\n' | rew '{f}'
  echo file | rew '{}-{rs:1..3}'
`
	fmt.Printf(usage, version)
}

// Version returns the current version string.
func Version() string {
	return version
}
