// Package store persists vendor analyses and the audit trail. Three
// implementations share one interface: an in-memory store for the CLI
// and tests, SQLite for single-node deployments, and Postgres for
// shared ones.
package store

import (
	"context"

	"github.com/nexus-group/quote-intel/internal/model"
)

// ListFilter narrows an analysis listing.
type ListFilter struct {
	VendorName string `json:"vendor_name,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// DefaultListLimit caps listings when the caller does not set one.
const DefaultListLimit = 100

// Store is the persistence interface for analyses and audit entries.
// Lookups that find nothing return (nil, nil), not an error.
type Store interface {
	// Analyses
	SaveAnalysis(ctx context.Context, a *model.VendorAnalysis) error
	SaveAnalyses(ctx context.Context, batch []*model.VendorAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*model.VendorAnalysis, error)
	ListAnalyses(ctx context.Context, filter ListFilter) ([]model.VendorAnalysis, error)
	ClearAnalyses(ctx context.Context) (int, error)

	// Audit trail
	AppendAudit(ctx context.Context, entry model.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
