package power

// AREFactors holds the Pitman asymptotic relative efficiency of each rank
// test against its parametric counterpart under normality (3/pi, rounded to
// three places). A rank test needs N_parametric/ARE subjects for the same
// power.
//
// Read-only for the lifetime of the process.
var AREFactors = map[string]float64{
	"wilcoxon":       0.955,
	"mann_whitney":   0.955,
	"kruskal_wallis": 0.955,
}

// FisherAdjustments holds the fixed correction pair approximating Fisher's
// exact test against the normal-approximation two-proportion test: the exact
// test is conservative, so estimated power shrinks by 0.95 and required N
// grows by 1.05. Heuristic multipliers, not computed from the hypergeometric
// distribution.
//
// Read-only for the lifetime of the process.
var FisherAdjustments = map[string]float64{
	"power": 0.95,
	"n":     1.05,
}
