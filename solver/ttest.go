package solver

import (
	"fmt"
	"math"

	"powercalc/domain/power"
	"powercalc/internal/dist"
	"powercalc/internal/numeric"
)

// oneSampleTPower is the forward N->power map for one-sample and paired
// designs: df = n-1, noncentrality = d*sqrt(n). Two-sided tests put alpha/2
// in each tail but only the concordant-direction tail counts toward power.
func oneSampleTPower(d, alpha float64, alt power.Alternative, n float64) float64 {
	df := n - 1
	if df < 1 {
		df = 1
	}
	crit := dist.TQuantile(1-alphaCrit(alpha, alt), df)
	delta := d * math.Sqrt(n)
	return clamp01(1 - dist.NoncentralTCDF(crit, df, delta))
}

// twoSampleTPower is the forward map for two independent groups with
// allocation ratio r = n2/n1: df = n1(1+r)-2, effective N = n1*r/(1+r).
func twoSampleTPower(d, alpha float64, alt power.Alternative, n1, ratio float64) float64 {
	df := n1*(1+ratio) - 2
	if df < 1 {
		df = 1
	}
	crit := dist.TQuantile(1-alphaCrit(alpha, alt), df)
	delta := d * math.Sqrt(n1*ratio/(1+ratio))
	return clamp01(1 - dist.NoncentralTCDF(crit, df, delta))
}

// SolveOneSampleT solves the one-sample t family. The same math covers the
// paired design, where n counts pairs and d is on the difference scale.
func SolveOneSampleT(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.EffectSize <= 0 {
		return power.SolveResult{}, fmt.Errorf("%w: effect size must be positive", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}

	if req.SampleSize != nil {
		pw := oneSampleTPower(req.EffectSize, req.Alpha, req.Alternative, *req.SampleSize)
		res.Power = power.Float(pw)
		return res, nil
	}

	n, err := numeric.InvertIncreasing(func(n float64) float64 {
		return oneSampleTPower(req.EffectSize, req.Alpha, req.Alternative, n)
	}, *req.Power, 2, nCeiling)
	if err != nil {
		return power.SolveResult{}, fmt.Errorf("%w: one-sample t: %v", power.ErrNoConvergence, err)
	}
	res.SampleSize = power.Float(n)
	res.TotalSize = power.Float(n)
	return res, nil
}

// SolveTwoSampleT solves the two-sample t family. SampleSize is n1; n2 is
// derived from the allocation ratio.
func SolveTwoSampleT(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.EffectSize <= 0 {
		return power.SolveResult{}, fmt.Errorf("%w: effect size must be positive", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}

	if req.SampleSize != nil {
		pw := twoSampleTPower(req.EffectSize, req.Alpha, req.Alternative, *req.SampleSize, req.Ratio)
		res.Power = power.Float(pw)
		return res, nil
	}

	n1, err := numeric.InvertIncreasing(func(n float64) float64 {
		return twoSampleTPower(req.EffectSize, req.Alpha, req.Alternative, n, req.Ratio)
	}, *req.Power, 2, nCeiling)
	if err != nil {
		return power.SolveResult{}, fmt.Errorf("%w: two-sample t: %v", power.ErrNoConvergence, err)
	}
	res.SampleSize = power.Float(n1)
	res.SampleSize2 = power.Float(n1 * req.Ratio)
	res.TotalSize = power.Float(n1 * (1 + req.Ratio))
	return res, nil
}
