// Package solver implements the power <-> sample-size relationship for each
// statistical test family. Every function is a pure, stateless map from a
// SolveRequest to a SolveResult; the direction (power or N) is picked by
// whichever field the request leaves unset.
package solver

import (
	"math"

	"powercalc/domain/power"
)

// nCeiling bounds the monotone search for required N. A target power that is
// unreachable below this many subjects is reported as non-convergence.
const nCeiling = 1e9

// validateCommon enforces the caller contract shared by every family:
// exactly one unknown, alpha in (0,1), a recognized sidedness, power in
// (0,1) when known, positive sample size when known, positive ratio.
func validateCommon(req power.SolveRequest) error {
	if (req.Power == nil) == (req.SampleSize == nil) {
		return power.NewContractError("exactly one of power and sample size must be provided")
	}
	if req.Alpha <= 0 || req.Alpha >= 1 {
		return power.NewInvalidInputError("alpha", "must be in (0,1)")
	}
	if !req.Alternative.Valid() {
		return power.NewInvalidInputError("alternative", "must be two-sided, larger or smaller")
	}
	if req.Power != nil && (*req.Power <= 0 || *req.Power >= 1) {
		return power.NewInvalidInputError("power", "must be in (0,1)")
	}
	if req.SampleSize != nil && *req.SampleSize <= 0 {
		return power.NewInvalidInputError("sample size", "must be positive")
	}
	if req.Ratio <= 0 {
		return power.NewInvalidInputError("allocation ratio", "must be positive")
	}
	return nil
}

// alphaCrit returns the tail mass spent on the critical region: the full
// alpha one-sided, alpha/2 per tail two-sided.
func alphaCrit(alpha float64, alt power.Alternative) float64 {
	if alt == power.TwoSided {
		return alpha / 2
	}
	return alpha
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
