package filter

import "math/rand/v2"

// EvalContext carries the mutable state threaded through one run of the
// pipeline: counters shared across all expressions, counters scoped to a
// single expression, and a seeded PRNG for the random-* generators.
//
// A single EvalContext is shared by every line read from stdin; local
// counters are keyed by the expression's position in the pattern so that
// two distinct {C} expressions in the same pattern count independently
// while a single {C} used once still persists across lines.
type EvalContext struct {
	rng *rand.Rand

	globalCounter int64
	localCounters map[int]int64
	currentExprID int
}

// NewEvalContext builds a context seeded from seed. Any fixed seed,
// including 0, produces deterministic output across runs; callers that want
// non-deterministic output should draw seed from an OS-random source
// themselves before calling this.
func NewEvalContext(seed int64) *EvalContext {
	return &EvalContext{
		rng:           rand.New(rand.NewPCG(uint64(seed), uint64(seed>>32)^0x9e3779b97f4a7c15)),
		localCounters: make(map[int]int64),
	}
}

// NextGlobal increments and returns the shared counter, starting at 1.
func (c *EvalContext) NextGlobal() int64 {
	c.globalCounter++
	return c.globalCounter
}

// SetExprID records which expression is currently being evaluated, so that
// NextLocal can scope its counter correctly. The evaluator calls this once
// per expression before running its filter chain.
func (c *EvalContext) SetExprID(exprID int) {
	c.currentExprID = exprID
}

// NextLocal increments and returns the counter scoped to the expression set
// by the most recent SetExprID call, starting at 1 for that expression's
// first evaluation.
func (c *EvalContext) NextLocal() int64 {
	c.localCounters[c.currentExprID]++
	return c.localCounters[c.currentExprID]
}

// Rand exposes the seeded PRNG to random-* generator filters.
func (c *EvalContext) Rand() *rand.Rand {
	return c.rng
}
