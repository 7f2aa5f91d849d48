package solver

import (
	"math"

	"powercalc/domain/power"
	"powercalc/internal/dist"
)

// SolveLogRank solves the two-group log-rank comparison with Schoenfeld's
// asymptotic formula on theta = ln(HR). The formulas are symmetric in
// theta -> -theta, so HR and 1/HR yield the same required N and power.
func SolveLogRank(req power.SolveRequest) (power.SolveResult, error) {
	req = req.Normalized()
	if err := validateCommon(req); err != nil {
		return power.SolveResult{}, err
	}
	if req.HazardRatio <= 0 {
		return power.SolveResult{}, power.NewInvalidInputError("hazard ratio", "must be positive")
	}
	if req.HazardRatio == 1 {
		return power.SolveResult{}, power.NewInvalidInputError("hazard ratio", "must differ from 1")
	}
	if req.ProbEvent <= 0 || req.ProbEvent > 1 {
		return power.SolveResult{}, power.NewInvalidInputError("event probability", "must be in (0,1]")
	}

	theta := math.Log(req.HazardRatio)
	zCrit := dist.NormalQuantile(1 - alphaCrit(req.Alpha, req.Alternative))
	res := power.SolveResult{Family: req.Family}

	if req.SampleSize != nil {
		n1 := *req.SampleSize
		nTotal := n1 * (1 + req.Ratio)
		events := nTotal * req.ProbEvent
		p1 := n1 / nTotal
		p2 := 1 - p1

		// Var of the log-HR estimator with d expected events split p1:p2.
		se := math.Sqrt(1 / (events * p1 * p2))

		var pw float64
		switch req.Alternative {
		case power.TwoSided:
			z := math.Abs(theta) / se
			pw = dist.NormalCDF(z-zCrit) + dist.NormalCDF(-z-zCrit)
		case power.Larger: // tested direction: hazard increased, theta > 0
			pw = dist.NormalCDF(theta/se - zCrit)
		case power.Smaller: // tested direction: hazard reduced, theta < 0
			pw = dist.NormalCDF(-theta/se - zCrit)
		}
		res.Power = power.Float(clamp01(pw))
		return res, nil
	}

	zBeta := dist.NormalQuantile(*req.Power)
	events := math.Pow(zCrit+zBeta, 2) * (1 + req.Ratio) / (req.Ratio * theta * theta)
	nTotal := events / req.ProbEvent
	n1 := nTotal / (1 + req.Ratio)
	if n1 < 1 {
		n1 = 1
	}
	res.SampleSize = power.Float(n1)
	res.SampleSize2 = power.Float(n1 * req.Ratio)
	res.TotalSize = power.Float(n1 * (1 + req.Ratio))
	return res, nil
}
