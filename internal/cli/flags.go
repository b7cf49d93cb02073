package cli

import (
	"github.com/spf13/pflag"
)

// Flags holds parsed global flags.
type Flags struct {
	Print       string
	PrintNUL    bool
	PrintRaw    bool
	NoPrintEnd  bool
	Read        string
	ReadNUL     bool
	ReadRaw     bool
	Diff        bool
	Pretty      bool
	Escape      string
	Seed        int64
	HasSeed     bool
	FailFast    bool
	Explain     bool
	DryRun      bool
	DiagFormat  string
	NoColor     bool
	Version     bool
	Help        bool
}

// ParseFlags extracts global flags from args and returns the remaining
// positional arguments (the pattern, or a subcommand and its arguments).
func ParseFlags(args []string) (Flags, []string, error) {
	var flags Flags
	fs := pflag.NewFlagSet("rew", pflag.ContinueOnError)
	fs.Usage = func() {}

	fs.StringVarP(&flags.Print, "print", "T", "", "output terminator")
	fs.BoolVarP(&flags.PrintNUL, "print-nul", "Z", false, "output terminator is NUL")
	fs.BoolVarP(&flags.PrintRaw, "print-raw", "R", false, "no output terminator")
	fs.BoolVarP(&flags.NoPrintEnd, "no-print-end", "L", false, "omit terminator after the last value")
	fs.StringVarP(&flags.Read, "read", "I", "", "input separator")
	fs.BoolVarP(&flags.ReadNUL, "read-nul", "0", false, "input separator is NUL")
	fs.BoolVarP(&flags.ReadRaw, "read-raw", "r", false, "treat stdin as a single value")
	fs.BoolVarP(&flags.Diff, "diff", "b", false, "diff output mode")
	fs.BoolVarP(&flags.Pretty, "pretty", "p", false, "pretty output mode")
	fs.StringVarP(&flags.Escape, "escape", "e", "", "override the escape metacharacter")
	fs.Int64Var(&flags.Seed, "seed", 0, "seed the generator PRNG")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "exit on the first runtime error")
	fs.BoolVar(&flags.Explain, "explain", false, "print the parsed pattern instead of running it")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "evaluate only the first input value")
	fs.StringVar(&flags.DiagFormat, "diagnostics-format", "", "export diagnostics as json or yaml")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored diagnostics")
	fs.BoolVar(&flags.Version, "version", false, "show version")
	fs.BoolVarP(&flags.Help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return flags, nil, err
	}
	flags.HasSeed = fs.Changed("seed")
	return flags, fs.Args(), nil
}
