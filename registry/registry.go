// Package registry holds the declarative per-test metadata: which family a
// named test belongs to, which effect-size kind it consumes, what raw inputs
// it expects and how its sample sizes are reported. The table is built once
// at process start and never mutated.
package registry

import (
	"sort"

	"powercalc/domain/power"
)

// Benchmark is a canonical reference effect size (Cohen's conventions, or
// hazard-ratio landmarks for the log-rank test).
type Benchmark struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TestFamilyConfig maps a human-readable test name to everything the engine
// needs to route and present a solve for it.
type TestFamilyConfig struct {
	Name       string           `json:"name"`
	Family     power.Family     `json:"family"`
	Effect     power.EffectKind `json:"effect"`
	RawInputs  []string         `json:"raw_inputs,omitempty"`
	Benchmarks []Benchmark      `json:"benchmarks,omitempty"`

	// NRatio marks families with an n2/n1 allocation ratio; NobsTotal marks
	// families whose sample size is a total rather than per-group count.
	NRatio    bool `json:"n_ratio,omitempty"`
	NobsTotal bool `json:"nobs_total,omitempty"`
	KGroups   bool `json:"k_groups,omitempty"`
	// FixedAlt marks F-family tests, which have no sidedness choice.
	FixedAlt bool `json:"fixed_alt,omitempty"`

	// ARE names the asymptotic-relative-efficiency factor for rank tests;
	// Fisher marks the exact-test adjustment pair.
	ARE    string `json:"are,omitempty"`
	Fisher bool   `json:"fisher,omitempty"`

	NLabels []string `json:"n_labels"`
}

var dBenchmarks = []Benchmark{{"Small", 0.2}, {"Medium", 0.5}, {"Large", 0.8}}
var fBenchmarks = []Benchmark{{"Small", 0.10}, {"Medium", 0.25}, {"Large", 0.40}}

var tests = map[string]TestFamilyConfig{
	"Two-Sample Independent Groups t-test": {
		Name:       "Two-Sample Independent Groups t-test",
		Family:     power.FamilyTwoSampleT,
		Effect:     power.EffectCohenDTwo,
		RawInputs:  []string{"mean1", "mean2", "pooled_sd"},
		Benchmarks: dBenchmarks,
		NRatio:     true,
		NLabels:    []string{"Required N₁", "Required N₂", "Total N Required"},
	},
	"One-Sample t-test": {
		Name:       "One-Sample t-test",
		Family:     power.FamilyOneSampleT,
		Effect:     power.EffectCohenDOne,
		RawInputs:  []string{"hypothesized_mean", "sample_mean", "sd"},
		Benchmarks: dBenchmarks,
		NobsTotal:  true,
		NLabels:    []string{"Required Sample Size (N)"},
	},
	"Paired t-test": {
		Name:       "Paired t-test",
		Family:     power.FamilyPairedT,
		Effect:     power.EffectCohenDPaired,
		RawInputs:  []string{"mean_diff", "sd_diff"},
		Benchmarks: dBenchmarks,
		NobsTotal:  true,
		NLabels:    []string{"Required Number of Pairs (N)"},
	},
	"Z-test: Two Independent Proportions": {
		Name:      "Z-test: Two Independent Proportions",
		Family:    power.FamilyTwoProportions,
		Effect:    power.EffectCohenH,
		RawInputs: []string{"prop1", "prop2"},
		NRatio:    true,
		NLabels:   []string{"Required N₁", "Required N₂", "Total N Required"},
	},
	"Z-test: Single Proportion": {
		Name:      "Z-test: Single Proportion",
		Family:    power.FamilySingleProportion,
		Effect:    power.EffectCohenH,
		RawInputs: []string{"null_prop", "sample_prop"},
		NLabels:   []string{"Required Sample Size (N)"},
	},
	"One-Way ANOVA (Between Subjects)": {
		Name:       "One-Way ANOVA (Between Subjects)",
		Family:     power.FamilyANOVA,
		Effect:     power.EffectCohenF,
		Benchmarks: fBenchmarks,
		KGroups:    true,
		FixedAlt:   true,
		NobsTotal:  true,
		NLabels:    []string{"Required N per Group", "Total N Required"},
	},
	"Mann-Whitney U Test": {
		Name:      "Mann-Whitney U Test",
		Family:    power.FamilyMannWhitney,
		Effect:    power.EffectCohenDTwo,
		ARE:       "mann_whitney",
		RawInputs: []string{"median1", "median2", "pooled_sd"},
		NRatio:    true,
		NLabels:   []string{"Approx. Required N₁", "Approx. Required N₂", "Approx. Total N"},
	},
	"Wilcoxon Signed-Rank Test": {
		Name:      "Wilcoxon Signed-Rank Test",
		Family:    power.FamilyWilcoxon,
		Effect:    power.EffectWilcoxonDirect,
		ARE:       "wilcoxon",
		NobsTotal: true,
		NLabels:   []string{"Approx. Required N"},
	},
	"Kruskal-Wallis Test": {
		Name:      "Kruskal-Wallis Test",
		Family:    power.FamilyKruskalWallis,
		Effect:    power.EffectCohenF,
		ARE:       "kruskal_wallis",
		KGroups:   true,
		FixedAlt:  true,
		NobsTotal: true,
		NLabels:   []string{"Approx. N per Group", "Approx. Total N"},
	},
	"Fisher's Exact Test": {
		Name:      "Fisher's Exact Test",
		Family:    power.FamilyFisherExact,
		Effect:    power.EffectCohenH,
		RawInputs: []string{"prop1", "prop2"},
		NRatio:    true,
		Fisher:    true,
		NLabels:   []string{"Approx. Required N₁", "Approx. Required N₂", "Approx. Total N"},
	},
	"Log-Rank Test": {
		Name:      "Log-Rank Test",
		Family:    power.FamilyLogRank,
		Effect:    power.EffectHazardRatio,
		RawInputs: []string{"hazard_ratio", "prob_event"},
		NRatio:    true,
		Benchmarks: []Benchmark{
			{"Small (HR=0.8)", 0.8},
			{"Medium (HR=0.65)", 0.65},
			{"Large (HR=0.5)", 0.5},
		},
		NLabels: []string{"Required N₁", "Required N₂", "Total N Required"},
	},
}

// Get looks a test config up by its exact display name.
func Get(name string) (TestFamilyConfig, bool) {
	cfg, ok := tests[name]
	return cfg, ok
}

// Names returns all registered test display names, sorted.
func Names() []string {
	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered config, sorted by display name.
func All() []TestFamilyConfig {
	configs := make([]TestFamilyConfig, 0, len(tests))
	for _, name := range Names() {
		configs = append(configs, tests[name])
	}
	return configs
}
