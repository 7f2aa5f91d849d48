package solver

import (
	"fmt"
	"math"

	"powercalc/domain/power"
	"powercalc/internal/dist"
)

// twoProportionPower is the forward map for the arcsine-transform z test:
// Cohen's h has variance 1/n1 + 1/n2, so the standardized effect at n1 with
// ratio r is h * sqrt(n1*r/(1+r)).
func twoProportionPower(h, alpha float64, alt power.Alternative, n1, ratio float64) float64 {
	zCrit := dist.NormalQuantile(1 - alphaCrit(alpha, alt))
	z := h * math.Sqrt(n1*ratio/(1+ratio))
	if alt == power.TwoSided {
		return clamp01(dist.NormalCDF(z-zCrit) + dist.NormalCDF(-z-zCrit))
	}
	return clamp01(dist.NormalCDF(z - zCrit))
}

// SolveTwoProportions solves the two-independent-proportion z family on
// Cohen's h. The N direction is the closed-form inversion of the
// quadratic-in-sqrt(N) relationship; no numeric search is needed.
func SolveTwoProportions(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.EffectSize <= 0 {
		return power.SolveResult{}, fmt.Errorf("%w: effect size (Cohen's h) must be positive", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}

	if req.SampleSize != nil {
		pw := twoProportionPower(req.EffectSize, req.Alpha, req.Alternative, *req.SampleSize, req.Ratio)
		res.Power = power.Float(pw)
		return res, nil
	}

	zCrit := dist.NormalQuantile(1 - alphaCrit(req.Alpha, req.Alternative))
	zBeta := dist.NormalQuantile(*req.Power)
	n1 := math.Pow((zCrit+zBeta)/req.EffectSize, 2) * (1 + req.Ratio) / req.Ratio
	if n1 < 1 {
		n1 = 1
	}
	res.SampleSize = power.Float(n1)
	res.SampleSize2 = power.Float(n1 * req.Ratio)
	res.TotalSize = power.Float(n1 * (1 + req.Ratio))
	return res, nil
}

// SolveSingleProportion solves the one-sample proportion z test with the
// unpooled-variance Wald approximation:
//
//	n = [(z_a*sqrt(p0(1-p0)) + z_b*sqrt(p1(1-p1))) / (p1-p0)]^2
func SolveSingleProportion(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}

	p0, p1 := req.NullProp, req.AltProp
	if p0 <= 0 || p0 >= 1 || p1 <= 0 || p1 >= 1 {
		return power.SolveResult{}, fmt.Errorf("%w: proportions must lie in (0,1)", power.ErrDegenerateInput)
	}
	if p0 == p1 {
		return power.SolveResult{}, fmt.Errorf("%w: null and alternative proportions are equal", power.ErrDegenerateInput)
	}

	res := power.SolveResult{Family: req.Family}
	zCrit := dist.NormalQuantile(1 - alphaCrit(req.Alpha, req.Alternative))
	sd0 := math.Sqrt(p0 * (1 - p0))
	sd1 := math.Sqrt(p1 * (1 - p1))
	delta := math.Abs(p1 - p0)

	if req.SampleSize != nil {
		// Invert the Wald statistic at the given n.
		z := (delta*math.Sqrt(*req.SampleSize) - zCrit*sd0) / sd1
		res.Power = power.Float(clamp01(dist.NormalCDF(z)))
		return res, nil
	}

	zBeta := dist.NormalQuantile(*req.Power)
	n := math.Pow((zCrit*sd0+zBeta*sd1)/delta, 2)
	if n < 1 {
		n = 1
	}
	res.SampleSize = power.Float(n)
	res.TotalSize = power.Float(n)
	return res, nil
}

// SolveFisherExact reuses the two-proportion normal approximation and applies
// the fixed conservatism corrections: estimated power shrinks by the power
// factor, required N grows by the n factor. An approximation to the exact
// test, not a hypergeometric calculation.
func SolveFisherExact(req power.SolveRequest) (power.SolveResult, error) {
	res, err := SolveTwoProportions(req)
	if err != nil {
		return power.SolveResult{}, err
	}

	if res.Power != nil {
		res.Power = power.Float(clamp01(*res.Power * power.FisherAdjustments["power"]))
		return res, nil
	}

	nAdj := power.FisherAdjustments["n"]
	n1 := *res.SampleSize * nAdj
	res.SampleSize = power.Float(n1)
	res.SampleSize2 = power.Float(n1 * req.Normalized().Ratio)
	res.TotalSize = power.Float(n1 * (1 + req.Normalized().Ratio))
	return res, nil
}
