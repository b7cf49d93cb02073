package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeSpec is a 1-based, inclusive range as written in a pattern argument:
// "A..B", "A..", "..B", or a single index "A" (treated as A..A).  Negative
// indices count from the end, -1 being the last element.
type RangeSpec struct {
	HasStart bool
	Start    int
	HasEnd   bool
	End      int
}

// ParseRange parses a RANGE argument. A literal 0 on either bound is
// rejected: positions are 1-based, and 0 is never a valid index.
func ParseRange(s string) (RangeSpec, error) {
	if s == "" {
		return RangeSpec{}, fmt.Errorf("empty range")
	}
	if !strings.Contains(s, "..") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if n == 0 {
			return RangeSpec{}, fmt.Errorf("invalid range %q: index 0 is not allowed (positions are 1-based)", s)
		}
		return RangeSpec{HasStart: true, Start: n, HasEnd: true, End: n}, nil
	}

	parts := strings.SplitN(s, "..", 2)
	spec := RangeSpec{}
	if parts[0] != "" {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return RangeSpec{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if n == 0 {
			return RangeSpec{}, fmt.Errorf("invalid range %q: index 0 is not allowed (positions are 1-based)", s)
		}
		spec.HasStart, spec.Start = true, n
	}
	if parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return RangeSpec{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if n == 0 {
			return RangeSpec{}, fmt.Errorf("invalid range %q: index 0 is not allowed (positions are 1-based)", s)
		}
		spec.HasEnd, spec.End = true, n
	}
	return spec, nil
}

// Resolve converts the spec to a clamped, zero-based, half-open [lo, hi)
// slice range over a sequence of length n, applying the 1-based/negative
// indexing and inclusive-end conventions.
func (r RangeSpec) Resolve(n int) (lo, hi int) {
	toZeroBased := func(idx int) int {
		if idx > 0 {
			return idx - 1
		}
		return n + idx
	}

	lo = 0
	if r.HasStart {
		lo = toZeroBased(r.Start)
	}
	hi = n
	if r.HasEnd {
		hi = toZeroBased(r.End) + 1
	}

	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
