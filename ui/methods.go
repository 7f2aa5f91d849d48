package ui

import (
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// methodsDoc summarizes the statistical approach behind each family, served
// rendered so front ends can embed it directly.
const methodsDoc = `# Methods

## t-family (one-sample, paired, two-sample)
Power is computed from the noncentral t distribution with noncentrality
δ = d·√(effective N). Two-sided tests place α/2 in each tail and count only
the concordant-direction tail toward power. Sample size is found by monotone
bisection on the forward power function.

## One-way ANOVA
Noncentral F with numerator df k−1, denominator df N−k and noncentrality
f²·N. Balanced groups only; per-group N is reported as total/k.

## Proportions
Two independent proportions use the normal approximation on Cohen's h, the
arcsine-transformed difference. The single-proportion test uses the
unpooled-variance Wald formula. Fisher's exact test reuses the two-proportion
approximation with fixed conservatism corrections (power ×0.95, N ×1.05).
This is an approximation, not a hypergeometric calculation.

## Log-rank (Schoenfeld)
Required events follow Schoenfeld's asymptotic formula on θ = ln(HR);
total N is events divided by the event probability. The formulas are
symmetric in θ → −θ, so HR and 1/HR are interchangeable.

## Rank tests
Mann-Whitney, Wilcoxon signed-rank and Kruskal-Wallis are approximated by
their parametric counterparts rescaled by the Pitman ARE (3/π ≈ 0.955).

## Cluster-randomized designs
DEFF = 1 + (m−1)·ICC inflates the individual-level N; the cluster count is
the ceiling of inflated N over cluster size.

## Repeated measures
Within-subject designs gain efficiency with correlation ρ between
measurements; noncentrality scales by k/(1−ρ). Above ρ = 0.95 the
approximation is not reliable and no number is reported.
`

// handleMethods serves the methods notes as rendered HTML.
func (a *App) handleMethods(w http.ResponseWriter, r *http.Request) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(methodsDoc), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
