// Package models holds the JSON DTOs exchanged with the HTTP API and CLI.
package models

import (
	"powercalc/domain/power"
)

// SolveRequest is the wire form of one solve call. Test selects a registry
// entry by display name; exactly one of Power/SampleSize must be present, the
// other is the unknown being solved.
type SolveRequest struct {
	Test        string  `json:"test"`
	Alpha       float64 `json:"alpha"`
	Alternative string  `json:"alternative,omitempty"`

	// EffectSize is the pre-computed standardized magnitude; RawInputs are
	// the family-specific raw measurements when the caller has those
	// instead. EffectSize wins when both are present.
	EffectSize *float64           `json:"effect_size,omitempty"`
	RawInputs  map[string]float64 `json:"raw_inputs,omitempty"`

	Power      *float64 `json:"power,omitempty"`
	SampleSize *float64 `json:"sample_size,omitempty"`

	Ratio        float64 `json:"ratio,omitempty"`
	Groups       int     `json:"groups,omitempty"`
	Correlation  float64 `json:"correlation,omitempty"`
	Measurements int     `json:"measurements,omitempty"`
}

// SolveResponse is the engine's answer plus presentation metadata.
type SolveResponse struct {
	RequestID string            `json:"request_id"`
	Test      string            `json:"test"`
	Family    power.Family      `json:"family"`
	Result    power.SolveResult `json:"result"`
	NLabels   []string          `json:"n_labels,omitempty"`
}

// ClusterRequest adjusts an individual-level N for cluster randomization.
type ClusterRequest struct {
	IndividualN float64 `json:"individual_n"`
	ClusterSize int     `json:"cluster_size"`
	ICC         float64 `json:"icc"`
}

// CurveRequest sweeps power over a sample-size grid for one test.
type CurveRequest struct {
	SolveRequest
	NFrom float64 `json:"n_from"`
	NTo   float64 `json:"n_to"`
	NStep float64 `json:"n_step"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
	// Kind is "contract", "invalid", "degenerate", "no_convergence" or
	// "unknown_test"; clients branch on it rather than on message text.
	Kind string `json:"kind"`
}
