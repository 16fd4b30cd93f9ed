// Package api exposes the analysis pipeline and store over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexus-group/quote-intel/internal/pipeline"
	"github.com/nexus-group/quote-intel/internal/store"
)

// Options tunes the router middleware.
type Options struct {
	// RateLimitRPS is the per-client request rate. Zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter assembles the HTTP API around a store and an analyzer.
func NewRouter(s store.Store, a *pipeline.Analyzer, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger())
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = int(opts.RateLimitRPS)
		}
		r.Use(RateLimit(opts.RateLimitRPS, burst))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	analyze := NewAnalyzeHandler(s, a)
	records := NewRecordsHandler(s)

	r.Get("/", records.Root)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", records.Health)
		r.Get("/sample-vendors", analyze.SampleVendors)
		r.Post("/analyze", analyze.Analyze)
		r.Post("/analyze-samples", analyze.AnalyzeSamples)
		r.Post("/compare", analyze.Compare)
		r.Get("/analyses", records.List)
		r.Get("/analysis/{id}", records.Get)
		r.Get("/stats", records.Stats)
		r.Get("/audit", records.Audit)
		r.Delete("/clear", records.Clear)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
