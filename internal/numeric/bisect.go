// Package numeric holds the monotone inversion utility shared by the family
// solvers for the power->N direction when no closed form exists.
package numeric

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBracket means the forward function never reached the target
	// within the search ceiling.
	ErrNoBracket = errors.New("monotone search could not bracket the target")
	// ErrMaxIterations means bisection ran out of its iteration bound
	// before reaching tolerance.
	ErrMaxIterations = errors.New("bisection exceeded iteration bound")
)

const (
	maxDoublings  = 64
	maxBisections = 200
	tolerance     = 1e-8
)

// InvertIncreasing finds x in [lo, ceiling] with f(x) ~= target, for f
// strictly increasing on the interval (the power-in-N monotonicity every
// family solver guarantees). The upper bracket is found by doubling from lo;
// the root by bisection. Non-convergence is an error, never a loop.
func InvertIncreasing(f func(float64) float64, target, lo, ceiling float64) (float64, error) {
	if f(lo) >= target {
		return lo, nil
	}

	hi := lo
	bracketed := false
	for i := 0; i < maxDoublings; i++ {
		hi *= 2
		if hi > ceiling {
			hi = ceiling
		}
		if f(hi) >= target {
			bracketed = true
			break
		}
		if hi == ceiling {
			break
		}
	}
	if !bracketed {
		return 0, fmt.Errorf("%w: target %g unreachable below %g", ErrNoBracket, target, ceiling)
	}

	for i := 0; i < maxBisections; i++ {
		mid := (lo + hi) / 2
		if f(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < tolerance*(1+hi) {
			return hi, nil
		}
	}
	return 0, fmt.Errorf("%w: interval [%g, %g]", ErrMaxIterations, lo, hi)
}
