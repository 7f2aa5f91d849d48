package power

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Effect size calculators. Each converts raw, family-specific measurements
// into a non-negative standardized magnitude. Direction is discarded; only
// magnitude drives power. The boolean is false when the effect is undefined
// for the given inputs - callers must not substitute zero.

// CohenDTwo computes |mean1-mean2| / pooledSD for two independent groups.
func CohenDTwo(mean1, mean2, pooledSD float64) (float64, bool) {
	if pooledSD <= 0 {
		return 0, false
	}
	return math.Abs(mean1-mean2) / pooledSD, true
}

// CohenDOne computes |sampleMean-hypothesizedMean| / sd for a one-sample design.
func CohenDOne(sampleMean, hypothesizedMean, sd float64) (float64, bool) {
	if sd <= 0 {
		return 0, false
	}
	return math.Abs(sampleMean-hypothesizedMean) / sd, true
}

// CohenDPaired computes |meanDiff| / sdDiff for a paired design.
func CohenDPaired(meanDiff, sdDiff float64) (float64, bool) {
	if sdDiff <= 0 {
		return 0, false
	}
	return math.Abs(meanDiff) / sdDiff, true
}

// CohenH computes |2·asin(√p1) − 2·asin(√p2)|, the arcsine-transformed
// difference of two proportions. Undefined when either proportion sits on or
// outside the (0,1) boundary, or when p1 == p2 (no direction to power).
func CohenH(p1, p2 float64) (float64, bool) {
	if p1 <= 0 || p1 >= 1 || p2 <= 0 || p2 >= 1 {
		return 0, false
	}
	if p1 == p2 {
		return 0, false
	}
	h := 2*math.Asin(math.Sqrt(p1)) - 2*math.Asin(math.Sqrt(p2))
	return math.Abs(h), true
}

// EffectFromInputs derives the standardized effect for a kind from named raw
// inputs, using the registry's raw-input parameter names. Direct-entry kinds
// (Cohen's f, Wilcoxon) read "effect_size". The hazard-ratio kind is not
// pre-computed here: the survival solver needs the signed log hazard ratio.
func EffectFromInputs(kind EffectKind, in map[string]float64) (float64, bool) {
	get := func(names ...string) (float64, bool) {
		for _, name := range names {
			if v, ok := in[name]; ok {
				return v, true
			}
		}
		return 0, false
	}

	switch kind {
	case EffectCohenDTwo:
		m1, ok1 := get("mean1", "median1")
		m2, ok2 := get("mean2", "median2")
		sd, ok3 := get("pooled_sd")
		if !ok1 || !ok2 || !ok3 {
			return 0, false
		}
		return CohenDTwo(m1, m2, sd)
	case EffectCohenDOne:
		sm, ok1 := get("sample_mean")
		hm, ok2 := get("hypothesized_mean")
		sd, ok3 := get("sd")
		if !ok1 || !ok2 || !ok3 {
			return 0, false
		}
		return CohenDOne(sm, hm, sd)
	case EffectCohenDPaired:
		md, ok1 := get("mean_diff")
		sd, ok2 := get("sd_diff")
		if !ok1 || !ok2 {
			return 0, false
		}
		return CohenDPaired(md, sd)
	case EffectCohenH:
		p1, ok1 := get("prop1", "null_prop")
		p2, ok2 := get("prop2", "sample_prop")
		if !ok1 || !ok2 {
			return 0, false
		}
		return CohenH(p1, p2)
	case EffectCohenF, EffectWilcoxonDirect:
		return get("effect_size")
	default:
		return 0, false
	}
}

// CohenDTwoFromSamples derives Cohen's d from two pilot samples, pooling the
// sample standard deviations with n-1 weights.
func CohenDTwoFromSamples(group1, group2 []float64) (float64, bool) {
	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1 < 2 || n2 < 2 {
		return 0, false
	}

	mean1, err := stats.Mean(group1)
	if err != nil {
		return 0, false
	}
	mean2, err := stats.Mean(group2)
	if err != nil {
		return 0, false
	}
	var1, err := stats.SampleVariance(group1)
	if err != nil {
		return 0, false
	}
	var2, err := stats.SampleVariance(group2)
	if err != nil {
		return 0, false
	}

	pooled := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	return CohenDTwo(mean1, mean2, pooled)
}

// CohenDPairedFromSamples derives paired Cohen's d from per-subject
// before/after measurements. Slices must be the same length.
func CohenDPairedFromSamples(before, after []float64) (float64, bool) {
	if len(before) != len(after) || len(before) < 2 {
		return 0, false
	}

	diffs := make([]float64, len(before))
	for i := range before {
		diffs[i] = after[i] - before[i]
	}

	meanDiff, err := stats.Mean(diffs)
	if err != nil {
		return 0, false
	}
	sdDiff, err := stats.StandardDeviationSample(diffs)
	if err != nil {
		return 0, false
	}
	return CohenDPaired(meanDiff, sdDiff)
}
