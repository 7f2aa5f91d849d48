package solver

import (
	"fmt"

	"powercalc/domain/power"
	"powercalc/internal/dist"
	"powercalc/internal/numeric"
)

// anovaPower is the forward map for the balanced one-way ANOVA: numerator
// df = k-1, denominator df = nTotal-k, noncentrality = f^2 * nTotal. The F
// test is inherently one-sided in alpha.
func anovaPower(f, alpha float64, k int, nTotal float64) float64 {
	df1 := float64(k - 1)
	df2 := nTotal - float64(k)
	if df2 < 1 {
		df2 = 1
	}
	crit := dist.FQuantile(1-alpha, df1, df2)
	lambda := f * f * nTotal
	return clamp01(1 - dist.NoncentralFCDF(crit, df1, df2, lambda))
}

// SolveANOVA solves the one-way F family with Cohen's f. SampleSize is the
// TOTAL count across all groups; results report total and the balanced
// per-group share. Unbalanced designs are not supported.
func SolveANOVA(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.Groups < 2 {
		return power.SolveResult{}, power.NewInvalidInputError("groups", "must be at least 2")
	}
	if req.EffectSize <= 0 {
		return power.SolveResult{}, fmt.Errorf("%w: effect size must be positive", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}
	k := req.Groups

	if req.SampleSize != nil {
		pw := anovaPower(req.EffectSize, req.Alpha, k, *req.SampleSize)
		res.Power = power.Float(pw)
		return res, nil
	}

	lo := float64(k + 1) // denominator df must stay positive
	nTotal, err := numeric.InvertIncreasing(func(n float64) float64 {
		return anovaPower(req.EffectSize, req.Alpha, k, n)
	}, *req.Power, lo, nCeiling)
	if err != nil {
		return power.SolveResult{}, fmt.Errorf("%w: anova: %v", power.ErrNoConvergence, err)
	}
	res.SampleSize = power.Float(nTotal / float64(k))
	res.TotalSize = power.Float(nTotal)
	return res, nil
}
