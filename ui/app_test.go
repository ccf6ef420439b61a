package ui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/adapters/rng"
	"distviz/app"
	"distviz/domain/core"
	"distviz/internal"
	"distviz/internal/config"
	"distviz/internal/errors"
	"distviz/internal/variants"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	source, err := rng.New(42)
	require.NoError(t, err)
	logger := internal.NewLogger(internal.LogLevelError)
	svc := app.NewVisualizerService(variants.New(100), source, config.Default().Sampling, logger)
	return NewApp(svc, logger)
}

func do(t *testing.T, a *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListDistributions(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodGet, "/api/distributions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []app.DistributionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 13)
	assert.Equal(t, "Normal", list[0].Name)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newTestApp(t)
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/distributions", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestDescribe_RendersInfo(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodGet, "/api/distributions/Standard%20Normal", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Standard Normal", body["name"])
	assert.Contains(t, body["info_html"], "<strong>Parameter Effects:</strong>")
}

func TestCurve(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodPost, "/api/distributions/Normal/curve", `{"params":{"mean":1,"std":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var curve struct {
		X    []float64 `json:"x"`
		Y    []float64 `json:"y"`
		CDF  []float64 `json:"cdf"`
		Kind string    `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &curve))
	assert.Len(t, curve.X, 100)
	assert.Len(t, curve.Y, 100)
	assert.Len(t, curve.CDF, 100)
	assert.Equal(t, "density", curve.Kind)
	assert.InDelta(t, -7.0, curve.X[0], 1e-9)
}

func TestStatistics_SentinelsAreStrings(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodPost, "/api/distributions/t-distribution/statistics", `{"params":{"df":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Statistics []struct {
			Name  string      `json:"name"`
			Value interface{} `json:"value"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Statistics, 5)
	assert.Equal(t, 0.0, body.Statistics[0].Value)
	assert.Equal(t, "∞", body.Statistics[1].Value)
}

func TestErrorStatusMapping(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown distribution", http.MethodPost, "/api/distributions/Cauchy/curve", "", http.StatusNotFound, "NOT_FOUND"},
		{"invalid parameter", http.MethodPost, "/api/distributions/Uniform/curve", `{"params":{"low":2,"high":1}}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"missing parameter", http.MethodPost, "/api/distributions/Normal/statistics", `{"params":{"mean":0}}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"discrete quantiles", http.MethodPost, "/api/distributions/Poisson/quantiles", "", http.StatusUnprocessableEntity, "UNSUPPORTED"},
		{"sample size", http.MethodPost, "/api/distributions/Normal/samples", `{"count":2}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"trial count out of range", http.MethodPost, "/api/distributions/Binomial/curve", `{"params":{"n":1e20,"p":0.5}}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"fractional trial count", http.MethodPost, "/api/distributions/Binomial/samples", `{"params":{"n":2.5,"p":0.5}}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"malformed body", http.MethodPost, "/api/distributions/Normal/curve", `{"params":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, a, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, rec.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestRender(t *testing.T) {
	a := newTestApp(t)
	body := `{"params":{"n":20,"p":0.3},"show_cdf":true,"show_statistics":true,"show_quantiles":true,"sample_count":200,"compare_with":"Poisson"}`
	rec := do(t, a, http.MethodPost, "/api/distributions/Binomial/render", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Distribution         string `json:"distribution"`
		QuantilesUnsupported bool   `json:"quantiles_unsupported"`
		Curve                struct {
			X []float64 `json:"x"`
		} `json:"curve"`
		Samples struct {
			Values []float64 `json:"values"`
		} `json:"samples"`
		Comparison struct {
			Name  string `json:"name"`
			Curve struct {
				X []float64 `json:"x"`
			} `json:"curve"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Binomial", res.Distribution)
	assert.True(t, res.QuantilesUnsupported)
	assert.Len(t, res.Curve.X, 21)
	assert.Len(t, res.Samples.Values, 200)
	assert.Equal(t, "Poisson", res.Comparison.Name)
	assert.Equal(t, res.Curve.X, res.Comparison.Curve.X)
}

func TestExportCSV(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodPost, "/api/distributions/Bernoulli/export?format=csv", `{"params":{"p":0.25},"show_cdf":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bernoulli.csv")

	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"x", "pdf_pmf", "cdf"},
		{"0", "0.75", "0.75"},
		{"1", "0.25", "1"},
	}, records)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodPost, "/api/distributions/Normal/export?format=png", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog(t *testing.T) {
	a := newTestApp(t)
	rec := do(t, a, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 13)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{errors.CodeInvalidParameter, http.StatusBadRequest},
		{errors.CodeInvalidInput, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeUnsupported, http.StatusUnprocessableEntity},
		{errors.CodeSamplingError, http.StatusUnprocessableEntity},
		{errors.CodeInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.code))
		})
	}
}

func TestWriteError_DegenerateSampleIsRecoverable(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/distributions/Normal/samples", nil)
	rec := httptest.NewRecorder()

	a.writeError(rec, req, fmt.Errorf("summary: %w", core.ErrDegenerateSample))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, errors.CodeSamplingError, decodeError(t, rec).Code)
}

func TestSamples_SeedReplaysDraw(t *testing.T) {
	a := newTestApp(t)
	body := `{"params":{"mean":0,"std":1},"count":100,"seed":2024}`

	type draw struct {
		Values []float64 `json:"values"`
		Seed   uint64    `json:"seed"`
	}
	var first, second draw
	rec := do(t, a, http.MethodPost, "/api/distributions/Normal/samples", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	do(t, a, http.MethodPost, "/api/distributions/Normal/samples", `{"count":100}`)

	rec = do(t, a, http.MethodPost, "/api/distributions/Normal/samples", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Len(t, first.Values, 100)
	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, uint64(2024), second.Seed)
}
