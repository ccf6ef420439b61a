package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"distviz/adapters/excel"
	"distviz/app"
	"distviz/domain/dist"
)

// evaluateRequest is the body shared by the per-operation endpoints
type evaluateRequest struct {
	Params        dist.Params `json:"params"`
	Domain        []float64   `json:"domain,omitempty"`
	Count         int         `json:"count,omitempty"`
	Probabilities []float64   `json:"probabilities,omitempty"`
	Seed          uint64      `json:"seed,omitempty"` // Replayable sample stream
}

type describeResponse struct {
	*app.Description
	InfoHTML string `json:"info_html"`
}

type statisticsResponse struct {
	Distribution string          `json:"distribution"`
	Statistics   dist.Statistics `json:"statistics"`
}

type quantilesResponse struct {
	Distribution string                `json:"distribution"`
	Quantiles    []dist.QuantileMarker `json:"quantiles"`
}

// distributionName reads the {name} path segment, e.g. "Standard%20Normal"
func distributionName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (a *App) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.service.Distributions())
}

func (a *App) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := a.service.Catalog(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, catalog)
}

func (a *App) handleDescribe(w http.ResponseWriter, r *http.Request) {
	d, err := a.service.Describe(distributionName(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, describeResponse{
		Description: d,
		InfoHTML:    renderMarkdown(d.Info),
	})
}

func (a *App) handleCurve(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	curve, err := a.service.Curve(distributionName(r), req.Params, req.Domain)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, curve)
}

func (a *App) handleStatistics(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	name := distributionName(r)
	stats, err := a.service.Statistics(name, req.Params)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, statisticsResponse{Distribution: name, Statistics: stats})
}

func (a *App) handleQuantiles(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	name := distributionName(r)
	markers, err := a.service.Quantiles(name, req.Params, req.Probabilities)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, quantilesResponse{Distribution: name, Quantiles: markers})
}

func (a *App) handleSamples(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	set, err := a.service.Samples(distributionName(r), req.Params, req.Count, req.Seed)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, set)
}

func (a *App) handleRender(w http.ResponseWriter, r *http.Request) {
	var req app.RenderRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.Distribution = distributionName(r)
	result, err := a.service.Render(req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

// handleExport renders the curve and statistics and streams them as xlsx or csv
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := excel.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req app.RenderRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	req.Distribution = distributionName(r)
	req.ShowStatistics = true
	req.ShowQuantiles = false
	req.SampleCount = 0
	req.SampleSeed = 0

	result, err := a.service.Render(req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(result.Distribution, format)))
	if err := excel.NewDataWriter(format).Write(w, ExportFromResult(result)); err != nil {
		a.logger.Error("export of %s failed: %v", result.Distribution, err)
	}
}

// ExportFromResult converts a rendered interaction into an export payload
func ExportFromResult(result *app.RenderResult) excel.Export {
	e := excel.Export{
		Distribution: result.Distribution,
		Params:       result.Params,
		Curve:        result.Curve,
		Statistics:   result.Statistics,
	}
	if result.Comparison != nil {
		e.Comparison = &excel.Series{Name: result.Comparison.Name, Curve: result.Comparison.Curve}
	}
	return e
}

func exportFilename(distribution string, format excel.Format) string {
	base := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(distribution))
	return base + "." + string(format)
}
