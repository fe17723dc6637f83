package config

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultInterval is the pause after every question.
const DefaultInterval = 3 * time.Second

// Iterations is either Bounded(n) with n > 0 or Unbounded.
type Iterations struct {
	count int
}

// Bounded returns a finite iteration count. Non-positive n is treated as Unbounded.
func Bounded(n int) Iterations {
	if n <= 0 {
		return Unbounded()
	}
	return Iterations{count: n}
}

// Unbounded returns the run-forever value.
func Unbounded() Iterations {
	return Iterations{}
}

// IsUnbounded reports whether the loop should run until cancelled.
func (i Iterations) IsUnbounded() bool {
	return i.count <= 0
}

// Count returns the finite iteration count, or 0 when unbounded.
func (i Iterations) Count() int {
	if i.IsUnbounded() {
		return 0
	}
	return i.count
}

// Done reports whether completed iterations exhaust the bound.
func (i Iterations) Done(completed int) bool {
	return !i.IsUnbounded() && completed >= i.count
}

func (i Iterations) String() string {
	if i.IsUnbounded() {
		return "infinite"
	}
	return strconv.Itoa(i.count)
}

// RunParams controls pacing and repetition of a run.
type RunParams struct {
	Interval   time.Duration
	Iterations Iterations
}

// DefaultRunParams returns a 3s interval with unbounded iterations.
func DefaultRunParams() RunParams {
	return RunParams{
		Interval:   DefaultInterval,
		Iterations: Unbounded(),
	}
}

// maxIntervalSeconds is the largest count of seconds a time.Duration holds.
const maxIntervalSeconds = math.MaxInt64 / int64(time.Second)

// ParseInterval reads a whole number of seconds. Empty, non-numeric,
// non-positive and out-of-range input all yield DefaultInterval.
func ParseInterval(input string) time.Duration {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || n <= 0 || n > maxIntervalSeconds {
		return DefaultInterval
	}
	return time.Duration(n) * time.Second
}

// ParseIterations reads an iteration count. Empty input selects
// Unbounded. Input that is not a positive integer also falls back to
// Unbounded, and ok is false so the caller can say so.
func ParseIterations(input string) (Iterations, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Unbounded(), true
	}
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return Unbounded(), false
	}
	return Bounded(n), true
}
