// Package progress maps a deliverable's time window to a normalized urgency
// value: 1 at creation, 0 at and after the due time.
//
// Everything here is a pure function of its arguments and safe to call at any
// frequency (the live view calls it once per second per record).
package progress

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Policy selects the interpolation between creation and due time.
type Policy int

const (
	// Linear returns remaining/total.
	Linear Policy = iota

	// Logarithmic returns ln(1+remaining)/ln(1+total) with both measured in
	// seconds. It stays close to 1 for most of the window and drops in the
	// final stretch.
	Logarithmic
)

// ErrUnknownPolicy is returned by [ParsePolicy] for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown progress policy")

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case Logarithmic:
		return "logarithmic"
	default:
		return "linear"
	}
}

// ParsePolicy parses a policy name: "linear", "logarithmic" or "log".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "logarithmic", "log":
		return Logarithmic, nil
	default:
		return Linear, fmt.Errorf("%w: %q (want linear or logarithmic)", ErrUnknownPolicy, s)
	}
}

// Progress returns a value in [0,1] for now within the window
// [createdAt, dueAt].
//
// At or past dueAt the result is 0. A window with dueAt at or before createdAt
// is degenerate and also yields 0. At or before createdAt the result is 1.
// In between, the value decreases monotonically as now advances.
func Progress(policy Policy, createdAt, dueAt, now time.Time) float64 {
	total := secondsBetween(createdAt, dueAt)
	remaining := secondsBetween(now, dueAt)

	if remaining <= 0 || total <= 0 {
		return 0
	}

	if remaining >= total {
		return 1
	}

	var v float64

	switch policy {
	case Logarithmic:
		v = math.Log1p(remaining) / math.Log1p(total)
	default:
		v = remaining / total
	}

	return clamp(v)
}

// secondsBetween returns to-from in seconds. Unlike [time.Time.Sub] it does
// not saturate at the ~292 year range of [time.Duration].
func secondsBetween(from, to time.Time) float64 {
	return float64(to.Unix()-from.Unix()) + float64(to.Nanosecond()-from.Nanosecond())/1e9
}

// IsOverdue reports whether now is at or past dueAt.
func IsOverdue(dueAt, now time.Time) bool {
	return !now.Before(dueAt)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
