package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/pipeline"
	"github.com/nexus-group/quote-intel/internal/samples"
	"github.com/nexus-group/quote-intel/internal/scoring"
	"github.com/nexus-group/quote-intel/internal/store"
)

// AnalyzeHandler serves the scoring endpoints.
type AnalyzeHandler struct {
	store    store.Store
	analyzer *pipeline.Analyzer
}

func NewAnalyzeHandler(s store.Store, a *pipeline.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{store: s, analyzer: a}
}

// AnalyzeRequest is the body for POST /api/analyze. Cohort quotations,
// when given, stretch the envelope the relative criteria score against.
type AnalyzeRequest struct {
	RawDocument model.Quotation           `json:"raw_document"`
	Market      *model.MarketIntelligence `json:"market_intelligence,omitempty"`
	Priorities  *model.BuyerPriorities    `json:"buyer_priorities,omitempty"`
	Cohort      []model.Quotation         `json:"cohort,omitempty"`
}

type AnalyzeResponse struct {
	VendorID string                `json:"vendor_id"`
	Analysis *model.VendorAnalysis `json:"analysis"`
}

// CompareRequest is the body for POST /api/compare. Quotations trigger a
// fresh cohort analysis; vendor IDs re-rank stored analyses instead, and
// an empty request re-ranks the five most recent.
type CompareRequest struct {
	Quotations []model.Quotation      `json:"quotations,omitempty"`
	VendorIDs  []string               `json:"vendor_ids,omitempty"`
	Priorities *model.BuyerPriorities `json:"buyer_priorities,omitempty"`
}

type CompareResponse struct {
	Comparison    model.ComparisonResult  `json:"comparison"`
	VendorDetails []*model.VendorAnalysis `json:"vendor_details"`
}

type SamplesRequest struct {
	Priorities *model.BuyerPriorities `json:"buyer_priorities,omitempty"`
}

type SamplesResponse struct {
	VendorAnalyses    []*model.VendorAnalysis `json:"vendor_analyses"`
	Comparison        model.ComparisonResult  `json:"comparison"`
	AnalysisTimestamp time.Time               `json:"analysis_timestamp"`
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.analyzer.AnalyzeOne(r.Context(), req.RawDocument, req.Market, priorities(req.Priorities), req.Cohort)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	if err := h.store.SaveAnalysis(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	appendAudit(r, h.store, "SINGLE_ANALYSIS", map[string]any{"vendor": a.VendorName})

	writeJSON(w, http.StatusOK, AnalyzeResponse{VendorID: a.ID, Analysis: a})
}

func (h *AnalyzeHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Quotations) > 0 {
		h.compareQuotations(w, r, req)
		return
	}
	h.compareStored(w, r, req)
}

// compareQuotations analyzes a fresh cohort and persists every analysis.
func (h *AnalyzeHandler) compareQuotations(w http.ResponseWriter, r *http.Request, req CompareRequest) {
	report, err := h.analyzer.Compare(r.Context(), req.Quotations, priorities(req.Priorities))
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	if err := h.store.SaveAnalyses(r.Context(), report.Analyses); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	appendAudit(r, h.store, "COMPARISON", map[string]any{"vendors": len(report.Analyses)})

	writeJSON(w, http.StatusOK, CompareResponse{Comparison: report.Result, VendorDetails: report.Analyses})
}

// compareStored re-ranks previously stored analyses. Unknown IDs are
// skipped rather than failing the whole comparison.
func (h *AnalyzeHandler) compareStored(w http.ResponseWriter, r *http.Request, req CompareRequest) {
	var analyses []*model.VendorAnalysis

	if len(req.VendorIDs) == 0 {
		recent, err := h.store.ListAnalyses(r.Context(), store.ListFilter{Limit: 5})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for i := range recent {
			analyses = append(analyses, &recent[i])
		}
	} else {
		for _, id := range req.VendorIDs {
			a, err := h.store.GetAnalysis(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if a == nil {
				continue
			}
			analyses = append(analyses, a)
		}
	}

	if len(analyses) < 2 {
		writeError(w, http.StatusBadRequest, "need at least 2 vendors to compare")
		return
	}

	records := make([]model.VendorRecord, len(analyses))
	for i, a := range analyses {
		records[i] = a.Record
	}

	result, err := scoring.Compare(records, priorities(req.Priorities), h.analyzer.Policy())
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	appendAudit(r, h.store, "COMPARISON", map[string]any{"vendors": len(analyses)})

	writeJSON(w, http.StatusOK, CompareResponse{Comparison: result, VendorDetails: analyses})
}

func (h *AnalyzeHandler) SampleVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := samples.Vendors()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

func (h *AnalyzeHandler) AnalyzeSamples(w http.ResponseWriter, r *http.Request) {
	var req SamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vendors, err := samples.Vendors()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := h.analyzer.Compare(r.Context(), samples.Quotations(vendors), priorities(req.Priorities))
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	for i := range report.Analyses {
		report.Analyses[i].Market = vendors[i].Market
	}

	if err := h.store.SaveAnalyses(r.Context(), report.Analyses); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	appendAudit(r, h.store, "SAMPLE_ANALYSIS", map[string]any{"vendors": len(vendors)})

	writeJSON(w, http.StatusOK, SamplesResponse{
		VendorAnalyses:    report.Analyses,
		Comparison:        report.Result,
		AnalysisTimestamp: time.Now().UTC(),
	})
}

func priorities(pr *model.BuyerPriorities) model.BuyerPriorities {
	if pr == nil {
		return scoring.DefaultPriorities()
	}
	return *pr
}

// errorStatus maps scoring errors to 400 and everything else to 500.
func errorStatus(err error) int {
	var (
		validation *scoring.ValidationError
		weights    *scoring.InvalidWeightsError
		cohort     *scoring.EmptyCohortError
	)
	if errors.As(err, &validation) || errors.As(err, &weights) || errors.As(err, &cohort) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// appendAudit records a user action, logging instead of failing the
// request when the store rejects it.
func appendAudit(r *http.Request, s store.Store, action string, details map[string]any) {
	if err := s.AppendAudit(r.Context(), model.AuditEntry{Action: action, Details: details}); err != nil {
		zap.L().Warn("api: append audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
