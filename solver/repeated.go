package solver

import (
	"fmt"

	"powercalc/domain/power"
	"powercalc/internal/dist"
	"powercalc/internal/numeric"
)

// repeatedMeasuresPower is the forward map for the within-subject
// repeated-measures approximation: the single-measurement effect is boosted
// by the correlation between measurements, giving noncentrality
// n*k*f^2/(1-rho) on an F with df (k-1, (n-1)(k-1)).
func repeatedMeasuresPower(f, alpha, rho float64, k int, n float64) float64 {
	df1 := float64(k - 1)
	df2 := (n - 1) * float64(k-1)
	if df2 < 1 {
		df2 = 1
	}
	crit := dist.FQuantile(1-alpha, df1, df2)
	lambda := n * float64(k) * f * f / (1 - rho)
	return clamp01(1 - dist.NoncentralFCDF(crit, df1, df2, lambda))
}

// SolveRepeatedMeasures solves the repeated-measures design. Higher
// within-subject correlation means a more efficient design: power rises and
// required N falls monotonically in rho. At rho >= 0.95 the approximation is
// unreliable and the request is degenerate rather than misleading.
func SolveRepeatedMeasures(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.Measurements < 2 {
		return power.SolveResult{}, power.NewInvalidInputError("measurements", "must be at least 2")
	}
	if req.Correlation < 0 || req.Correlation >= 0.95 {
		return power.SolveResult{}, fmt.Errorf("%w: within-subject correlation %g outside the reliable range [0, 0.95)",
			power.ErrDegenerateInput, req.Correlation)
	}
	if req.EffectSize <= 0 {
		return power.SolveResult{}, fmt.Errorf("%w: effect size must be positive", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}

	if req.SampleSize != nil {
		pw := repeatedMeasuresPower(req.EffectSize, req.Alpha, req.Correlation, req.Measurements, *req.SampleSize)
		res.Power = power.Float(pw)
		return res, nil
	}

	n, err := numeric.InvertIncreasing(func(n float64) float64 {
		return repeatedMeasuresPower(req.EffectSize, req.Alpha, req.Correlation, req.Measurements, n)
	}, *req.Power, 2, nCeiling)
	if err != nil {
		return power.SolveResult{}, fmt.Errorf("%w: repeated measures: %v", power.ErrNoConvergence, err)
	}
	res.SampleSize = power.Float(n)
	res.TotalSize = power.Float(n)
	return res, nil
}
