package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// runSeq implements `rew seq [FROM..[TO]] [STEP]`. TO omitted means
// infinite; STEP defaults to +1 when FROM<=TO and -1 otherwise.
func runSeq(args []string) int {
	from, to, hasTo, err := parseSeqRange(firstOrDefault(args, "1.."))
	if err != nil {
		fmt.Fprintf(os.Stderr, "rew: seq: %v\n", err)
		return 2
	}

	step := 1
	if from > to && hasTo {
		step = -1
	}
	if len(args) > 1 {
		step, err = strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "rew: seq: invalid step %q: %v\n", args[1], err)
			return 2
		}
	}
	if step == 0 {
		fmt.Fprintln(os.Stderr, "rew: seq: step must not be 0")
		return 2
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	v := from
	for {
		if hasTo {
			if step > 0 && v > to {
				break
			}
			if step < 0 && v < to {
				break
			}
		}
		fmt.Fprintln(w, v)
		v += step
	}
	return 0
}

func firstOrDefault(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}

func parseSeqRange(s string) (from, to int, hasTo bool, err error) {
	if !strings.Contains(s, "..") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, false, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return n, n, true, nil
	}
	parts := strings.SplitN(s, "..", 2)
	from, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if parts[1] == "" {
		return from, 0, false, nil
	}
	to, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return from, to, true, nil
}
