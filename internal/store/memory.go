package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/nexus-group/quote-intel/internal/model"
)

// MemoryStore keeps analyses and audit entries in process memory. It
// is the default backend for the CLI and the zero-setup server mode.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]model.VendorAnalysis
	order    []string // insertion order, oldest first
	audit    []model.AuditEntry
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]model.VendorAnalysis)}
}

func (s *MemoryStore) SaveAnalysis(_ context.Context, a *model.VendorAnalysis) error {
	if a == nil {
		return eris.New("memory: save nil analysis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(a)
	return nil
}

func (s *MemoryStore) SaveAnalyses(_ context.Context, batch []*model.VendorAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range batch {
		if a == nil {
			return eris.New("memory: save nil analysis")
		}
		s.save(a)
	}
	return nil
}

// save fills missing identity fields and stores a copy. Callers hold mu.
func (s *MemoryStore) save(a *model.VendorAnalysis) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.analyses[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	s.analyses[a.ID] = *a
}

func (s *MemoryStore) GetAnalysis(_ context.Context, id string) (*model.VendorAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemoryStore) ListAnalyses(_ context.Context, filter ListFilter) ([]model.VendorAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var out []model.VendorAnalysis
	skipped := 0
	// Newest first.
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		a := s.analyses[s.order[i]]
		if filter.VendorName != "" && !strings.EqualFold(a.VendorName, filter.VendorName) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *MemoryStore) ClearAnalyses(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.analyses)
	s.analyses = make(map[string]model.VendorAnalysis)
	s.order = nil
	return n, nil
}

func (s *MemoryStore) AppendAudit(_ context.Context, entry model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *MemoryStore) ListAudit(_ context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.AuditEntry
	for i := len(s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.audit[i])
	}
	return out, nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }
func (s *MemoryStore) Ping(context.Context) error    { return nil }
func (s *MemoryStore) Close() error                  { return nil }
