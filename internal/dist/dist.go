// Package dist provides the distribution primitives the family solvers rely
// on. Central distributions delegate to gonum's distuv; the noncentral t and
// F functions, which gonum does not carry, are implemented in noncentral.go.
package dist

import (
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF computes the standard normal CDF Φ(x).
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal inverse CDF.
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// TQuantile computes the quantile of Student's t with df degrees of freedom.
func TQuantile(p, df float64) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return tDist.Quantile(p)
}

// FQuantile computes the quantile of the central F distribution. distuv.F
// carries no Quantile, so the beta relationship is inverted directly:
// if X ~ F(d1,d2) then d1·X/(d1·X+d2) ~ Beta(d1/2, d2/2).
func FQuantile(p, df1, df2 float64) float64 {
	y := mathext.InvRegIncBeta(df1/2, df2/2, p)
	return df2 * y / (df1 * (1 - y))
}
