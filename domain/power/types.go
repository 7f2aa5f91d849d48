package power

// Family identifies a statistical test family. Solvers are selected by this
// closed enumeration, never by runtime type inspection.
type Family string

const (
	FamilyTwoSampleT       Family = "2samp"
	FamilyOneSampleT       Family = "1samp"
	FamilyPairedT          Family = "paired"
	FamilyANOVA            Family = "anova"
	FamilyTwoProportions   Family = "prop"
	FamilySingleProportion Family = "singleprop"
	FamilyFisherExact      Family = "fisher"
	FamilyMannWhitney      Family = "mw"
	FamilyWilcoxon         Family = "wilcox"
	FamilyKruskalWallis    Family = "kw"
	FamilyLogRank          Family = "logrank"
	FamilyRepeatedMeasures Family = "repeated"
)

// EffectKind names the standardized effect-size scale a test family consumes.
type EffectKind string

const (
	EffectCohenDTwo    EffectKind = "cohen_d_two"
	EffectCohenDOne    EffectKind = "cohen_d_one"
	EffectCohenDPaired EffectKind = "cohen_d_paired"
	EffectCohenF       EffectKind = "cohen_f"
	EffectCohenH       EffectKind = "cohen_h"
	EffectHazardRatio  EffectKind = "hazard_ratio"
	// EffectWilcoxonDirect is the Wilcoxon signed-rank entry: the effect is
	// supplied directly on the paired-d scale rather than derived from raw inputs.
	EffectWilcoxonDirect EffectKind = "wilcoxon_special"
)

// Alternative is the sidedness of the alternative hypothesis.
type Alternative string

const (
	TwoSided Alternative = "two-sided"
	Larger   Alternative = "larger"
	Smaller  Alternative = "smaller"
)

// Valid reports whether the sidedness is one of the three supported values.
func (a Alternative) Valid() bool {
	return a == TwoSided || a == Larger || a == Smaller
}

// OneSided reports whether the alternative is directional.
func (a Alternative) OneSided() bool {
	return a == Larger || a == Smaller
}

// SolveRequest carries everything a family solver needs for one solve call.
// Exactly one of Power/SampleSize must be set; the unset one is the unknown.
// All fields are value-copied per request; nothing outlives the call.
type SolveRequest struct {
	Family      Family
	Alpha       float64
	Alternative Alternative

	// EffectSize is the standardized magnitude (Cohen's d/f/h). Ignored by
	// the log-rank family, which works from the signed HazardRatio.
	EffectSize float64

	// Power is in (0,1) when it is the known quantity, nil when unknown.
	Power *float64
	// SampleSize is n1 (or total n, per family convention) when known, nil
	// when unknown.
	SampleSize *float64

	// Nuisance parameters. Zero values mean "not applicable" unless the
	// family validates otherwise.
	Ratio       float64 // allocation ratio r = n2/n1; defaults to 1 when 0
	Groups      int     // number of groups (ANOVA, Kruskal-Wallis)
	HazardRatio float64 // log-rank
	ProbEvent   float64 // log-rank: probability an enrolled subject has an event
	NullProp    float64 // single proportion
	AltProp     float64 // single proportion

	// Repeated-measures parameters.
	Correlation  float64 // within-subject correlation rho
	Measurements int     // number of repeated measurements k
}

// Normalized returns a copy with defaults applied (ratio 1 when unset).
func (r SolveRequest) Normalized() SolveRequest {
	if r.Ratio == 0 {
		r.Ratio = 1
	}
	return r
}

// SolveResult is the engine's answer for one solve call. Either Power or
// SampleSize is populated depending on which was the unknown.
type SolveResult struct {
	Family Family `json:"family"`

	Power *float64 `json:"power,omitempty"`

	// SampleSize is n1 (per-group families) or total n (total-count
	// families), unrounded; callers generally ceil for reporting.
	SampleSize *float64 `json:"sample_size,omitempty"`
	// SampleSize2 is n2 = n1*ratio for two-group families.
	SampleSize2 *float64 `json:"sample_size_2,omitempty"`
	// TotalSize is the combined sample size when it differs from SampleSize.
	TotalSize *float64 `json:"total_size,omitempty"`

	// Cluster-design extras.
	DesignEffect *float64 `json:"design_effect,omitempty"`
	Clusters     *int     `json:"clusters,omitempty"`
}

// Float is a convenience for building optional numeric fields.
func Float(v float64) *float64 { return &v }
