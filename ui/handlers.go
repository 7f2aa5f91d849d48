package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"powercalc/app"
	"powercalc/domain/power"
	"powercalc/models"
	"powercalc/registry"
)

// handleListTests returns every registered test config.
func (a *App) handleListTests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.All())
}

// handleGetTest returns one test config by exact display name.
func (a *App) handleGetTest(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cfg, ok := registry.Get(name)
	if !ok {
		a.writeError(w, r, fmt.Errorf("%w: %q", power.ErrUnknownTest, name))
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleConstants exposes the read-only adjustment tables.
func (a *App) handleConstants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]map[string]float64{
		"are_factors":        power.AREFactors,
		"fisher_adjustments": power.FisherAdjustments,
	})
}

// handleSolve runs one solve call: power when sample size is given, sample
// size when power is given.
func (a *App) handleSolve(w http.ResponseWriter, r *http.Request) {
	var dto models.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		a.writeError(w, r, power.NewContractError("malformed JSON body"))
		return
	}

	cfg, req, err := buildEngineRequest(dto)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var res power.SolveResult
	if dto.SampleSize != nil {
		res, err = a.solve.SolvePower(req)
	} else {
		res, err = a.solve.SolveSampleSize(req)
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SolveResponse{
		RequestID: requestID(r),
		Test:      cfg.Name,
		Family:    cfg.Family,
		Result:    res,
		NLabels:   cfg.NLabels,
	})
}

// handleCluster inflates an individual-level N by the design effect.
func (a *App) handleCluster(w http.ResponseWriter, r *http.Request) {
	var dto models.ClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		a.writeError(w, r, power.NewContractError("malformed JSON body"))
		return
	}

	res, err := a.solve.ClusterAdjust(dto.IndividualN, dto.ClusterSize, dto.ICC)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SolveResponse{
		RequestID: requestID(r),
		Result:    res,
	})
}

// handleCurve sweeps power across a sample-size grid.
func (a *App) handleCurve(w http.ResponseWriter, r *http.Request) {
	var dto models.CurveRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		a.writeError(w, r, power.NewContractError("malformed JSON body"))
		return
	}

	points, err := a.solveCurve(r, dto)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"request_id": requestID(r),
		"test":       dto.Test,
		"points":     points,
	})
}

// buildEngineRequest maps a wire request onto the engine's SolveRequest via
// the registry config for the named test.
func buildEngineRequest(dto models.SolveRequest) (registry.TestFamilyConfig, power.SolveRequest, error) {
	cfg, ok := registry.Get(dto.Test)
	if !ok {
		return cfg, power.SolveRequest{}, fmt.Errorf("%w: %q", power.ErrUnknownTest, dto.Test)
	}

	alt := power.Alternative(dto.Alternative)
	if dto.Alternative == "" || cfg.FixedAlt {
		alt = power.TwoSided
	}

	req := power.SolveRequest{
		Family:       cfg.Family,
		Alpha:        dto.Alpha,
		Alternative:  alt,
		Power:        dto.Power,
		SampleSize:   dto.SampleSize,
		Ratio:        dto.Ratio,
		Groups:       dto.Groups,
		Correlation:  dto.Correlation,
		Measurements: dto.Measurements,
	}

	switch cfg.Family {
	case power.FamilyLogRank:
		req.HazardRatio = dto.RawInputs["hazard_ratio"]
		req.ProbEvent = dto.RawInputs["prob_event"]
	case power.FamilySingleProportion:
		req.NullProp = dto.RawInputs["null_prop"]
		req.AltProp = dto.RawInputs["sample_prop"]
	default:
		if dto.EffectSize != nil {
			req.EffectSize = *dto.EffectSize
		} else {
			es, ok := power.EffectFromInputs(cfg.Effect, dto.RawInputs)
			if !ok {
				return cfg, req, fmt.Errorf("%w: effect size undefined for the supplied raw inputs", power.ErrDegenerateInput)
			}
			req.EffectSize = es
		}
	}
	return cfg, req, nil
}

func (a *App) solveCurve(r *http.Request, dto models.CurveRequest) ([]app.CurvePoint, error) {
	dto.Power = nil
	dto.SampleSize = nil
	_, req, err := buildEngineRequest(dto.SolveRequest)
	if err != nil {
		return nil, err
	}
	if dto.NStep > 0 && (dto.NTo-dto.NFrom)/dto.NStep > float64(a.maxPoints) {
		return nil, power.NewInvalidInputError("curve grid", fmt.Sprintf("exceeds %d points", a.maxPoints))
	}
	return a.curves.PowerCurve(r.Context(), req, dto.NFrom, dto.NTo, dto.NStep)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine error tiers onto HTTP statuses: contract and
// invalid-input failures are the caller's fault (400), degenerate inputs are
// unprocessable (422), non-convergence is the engine's (500).
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	kind := "no_convergence"

	switch {
	case errors.Is(err, power.ErrContract):
		status, kind = http.StatusBadRequest, "contract"
	case errors.Is(err, power.ErrInvalidInput):
		status, kind = http.StatusBadRequest, "invalid"
	case errors.Is(err, power.ErrUnknownTest):
		status, kind = http.StatusNotFound, "unknown_test"
	case errors.Is(err, power.ErrDegenerateInput):
		status, kind = http.StatusUnprocessableEntity, "degenerate"
	}

	writeJSON(w, status, models.ErrorResponse{
		RequestID: requestID(r),
		Error:     err.Error(),
		Kind:      kind,
	})
}
