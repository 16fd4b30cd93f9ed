package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/monitoring"
	"github.com/nexus-group/quote-intel/internal/store"
)

// RecordsHandler serves stored analyses, the audit trail, and liveness.
type RecordsHandler struct {
	store     store.Store
	collector *monitoring.Collector
}

func NewRecordsHandler(s store.Store) *RecordsHandler {
	return &RecordsHandler{store: s, collector: monitoring.NewCollector(s)}
}

func (h *RecordsHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "online",
		"system":    "Nexus Quote Intelligence",
		"engine":    "rule-based",
		"timestamp": time.Now().UTC(),
	})
}

func (h *RecordsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":      "degraded",
			"engine_mode": "rule-based",
			"store":       "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"engine_mode": "rule-based",
		"store":       "ok",
	})
}

// Stats reports aggregate metrics over a lookback window. An absent or
// zero ?hours falls back to 24.
func (h *RecordsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	hours, ok := queryInt(w, r, "hours")
	if !ok {
		return
	}
	if hours == 0 {
		hours = 24
	}

	snap, err := h.collector.Collect(r.Context(), hours)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to collect stats")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ListFilter{VendorName: r.URL.Query().Get("vendor")}

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}
	filter.Limit = limit
	filter.Offset = offset

	analyses, err := h.store.ListAnalyses(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if analyses == nil {
		analyses = []model.VendorAnalysis{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses, "count": len(analyses)})
}

func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *RecordsHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	entries, err := h.store.ListAudit(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"audit_log": entries, "total_entries": len(entries)})
}

// Clear deletes stored analyses. The audit trail survives and records
// the deletion.
func (h *RecordsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ClearAnalyses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	appendAudit(r, h.store, "CLEAR", map[string]any{"deleted": n})

	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared", "deleted": n})
}

// queryInt parses a non-negative integer query parameter, writing a 400
// and reporting false when the value is malformed.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
