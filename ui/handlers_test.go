package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"powercalc/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Config{Port: "0", CurveMaxPoints: 500})
	require.NoError(t, err)
	return a
}

func postJSON(t *testing.T, a *App, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func get(a *App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestListAndGetTests(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/api/tests")
	require.Equal(t, http.StatusOK, rec.Code)
	var configs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &configs))
	assert.Len(t, configs, 11)

	name := url.PathEscape("Log-Rank Test")
	rec = get(a, "/api/tests/"+name)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "Log-Rank Test", cfg["name"])

	rec = get(a, "/api/tests/Nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSolve(t *testing.T) {
	a := newTestApp(t)

	t.Run("solves sample size from effect and power", func(t *testing.T) {
		effect := 0.5
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:       "Two-Sample Independent Groups t-test",
			Alpha:      0.05,
			EffectSize: &effect,
			Power:      &targetPower,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.SolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Result.SampleSize)
		assert.Greater(t, *resp.Result.SampleSize, 60.0)
		assert.Less(t, *resp.Result.SampleSize, 70.0)
		assert.NotEmpty(t, resp.RequestID)
		assert.Equal(t, []string{"Required N₁", "Required N₂", "Total N Required"}, resp.NLabels)
	})

	t.Run("derives the effect from raw inputs", func(t *testing.T) {
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:  "Two-Sample Independent Groups t-test",
			Alpha: 0.05,
			RawInputs: map[string]float64{
				"mean1": 10, "mean2": 5, "pooled_sd": 10,
			},
			Power: &targetPower,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.SolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Greater(t, *resp.Result.SampleSize, 60.0)
		assert.Less(t, *resp.Result.SampleSize, 70.0)
	})

	t.Run("log-rank reads its raw inputs", func(t *testing.T) {
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:  "Log-Rank Test",
			Alpha: 0.05,
			RawInputs: map[string]float64{
				"hazard_ratio": 0.65, "prob_event": 0.5,
			},
			Power: &targetPower,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.SolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Greater(t, *resp.Result.SampleSize, 80.0)
		assert.Less(t, *resp.Result.SampleSize, 95.0)
	})

	t.Run("contract violation maps to 400", func(t *testing.T) {
		effect := 0.5
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:       "Two-Sample Independent Groups t-test",
			Alpha:      0.05,
			EffectSize: &effect,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "contract", errResp.Kind)
	})

	t.Run("degenerate input maps to 422", func(t *testing.T) {
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:  "Two-Sample Independent Groups t-test",
			Alpha: 0.05,
			RawInputs: map[string]float64{
				"mean1": 10, "mean2": 5, "pooled_sd": 0,
			},
			Power: &targetPower,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var errResp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "degenerate", errResp.Kind)
	})

	t.Run("unknown test maps to 404", func(t *testing.T) {
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:  "Chi-Square Test",
			Alpha: 0.05,
			Power: &targetPower,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/solve", bytes.NewReader([]byte("{nope")))
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("anova ignores a requested sidedness", func(t *testing.T) {
		effect := 0.25
		targetPower := 0.80
		rec := postJSON(t, a, "/api/solve", models.SolveRequest{
			Test:        "One-Way ANOVA (Between Subjects)",
			Alpha:       0.05,
			Alternative: "larger",
			EffectSize:  &effect,
			Groups:      4,
			Power:       &targetPower,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp models.SolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Greater(t, *resp.Result.TotalSize, 170.0)
		assert.Less(t, *resp.Result.TotalSize, 190.0)
	})
}

func TestHandleCluster(t *testing.T) {
	a := newTestApp(t)

	rec := postJSON(t, a, "/api/cluster", models.ClusterRequest{
		IndividualN: 64, ClusterSize: 20, ICC: 0.05,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1.95, *resp.Result.DesignEffect, 1e-9)
	assert.Equal(t, 7, *resp.Result.Clusters)

	rec = postJSON(t, a, "/api/cluster", models.ClusterRequest{
		IndividualN: 64, ClusterSize: 20, ICC: 1.2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCurve(t *testing.T) {
	a := newTestApp(t)
	effect := 0.5

	t.Run("returns the swept points", func(t *testing.T) {
		rec := postJSON(t, a, "/api/curve", models.CurveRequest{
			SolveRequest: models.SolveRequest{
				Test: "Two-Sample Independent Groups t-test", Alpha: 0.05, EffectSize: &effect,
			},
			NFrom: 10, NTo: 100, NStep: 10,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Points []struct {
				SampleSize float64 `json:"sample_size"`
				Power      float64 `json:"power"`
			} `json:"points"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Points, 10)
	})

	t.Run("oversized grid is rejected", func(t *testing.T) {
		rec := postJSON(t, a, "/api/curve", models.CurveRequest{
			SolveRequest: models.SolveRequest{
				Test: "Two-Sample Independent Groups t-test", Alpha: 0.05, EffectSize: &effect,
			},
			NFrom: 1, NTo: 1e6, NStep: 1,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestIDPropagation(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tests", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))

	rec = get(a, "/api/tests")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleMethods(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/api/methods")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Schoenfeld")
}

func TestHandleConstants(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/api/constants")
	require.Equal(t, http.StatusOK, rec.Code)

	var constants map[string]map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &constants))
	assert.Equal(t, 0.955, constants["are_factors"]["mann_whitney"])
	assert.Equal(t, 1.05, constants["fisher_adjustments"]["n"])
}

func TestHandleExport(t *testing.T) {
	a := newTestApp(t)
	effect := 0.5

	rec := postJSON(t, a, "/api/export", models.CurveRequest{
		SolveRequest: models.SolveRequest{
			Test: "Two-Sample Independent Groups t-test", Alpha: 0.05, EffectSize: &effect,
		},
		NFrom: 10, NTo: 50, NStep: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "power_curve.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()

	got, err := book.GetCellValue("Power Curve", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Two-Sample Independent Groups t-test", got)
	got, err = book.GetCellValue("Power Curve", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Sample Size", got)
	got, err = book.GetCellValue("Power Curve", "A5")
	require.NoError(t, err)
	assert.Equal(t, "10", got)
}
