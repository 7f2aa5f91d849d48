package solver

import (
	"powercalc/domain/power"
)

// Non-parametric rank tests are approximated by their parametric
// counterparts rescaled with a fixed asymptotic relative efficiency. The
// adjustment is symmetric in the unknown: whichever direction is solved, the
// N entering the parametric formula is the ARE-adjusted one. Required N
// comes out as N_parametric/ARE; power at a fixed N is the parametric power
// at N*ARE. Applies only to the three named tests.

func solveWithARE(req power.SolveRequest, are float64,
	parametric func(power.SolveRequest) (power.SolveResult, error)) (power.SolveResult, error) {

	if req.SampleSize != nil {
		adjusted := req
		adjusted.SampleSize = power.Float(*req.SampleSize * are)
		res, err := parametric(adjusted)
		if err != nil {
			return power.SolveResult{}, err
		}
		return power.SolveResult{Family: req.Family, Power: res.Power}, nil
	}

	res, err := parametric(req)
	if err != nil {
		return power.SolveResult{}, err
	}
	scale := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return power.Float(*v / are)
	}
	return power.SolveResult{
		Family:      req.Family,
		SampleSize:  scale(res.SampleSize),
		SampleSize2: scale(res.SampleSize2),
		TotalSize:   scale(res.TotalSize),
	}, nil
}

// SolveMannWhitney approximates the Mann-Whitney U test via the two-sample t
// family.
func SolveMannWhitney(req power.SolveRequest) (power.SolveResult, error) {
	return solveWithARE(req, power.AREFactors["mann_whitney"], SolveTwoSampleT)
}

// SolveWilcoxon approximates the Wilcoxon signed-rank test via the paired
// (one-sample) t family.
func SolveWilcoxon(req power.SolveRequest) (power.SolveResult, error) {
	return solveWithARE(req, power.AREFactors["wilcoxon"], SolveOneSampleT)
}

// SolveKruskalWallis approximates the Kruskal-Wallis k-sample test via the
// ANOVA F family.
func SolveKruskalWallis(req power.SolveRequest) (power.SolveResult, error) {
	return solveWithARE(req, power.AREFactors["kruskal_wallis"], SolveANOVA)
}
