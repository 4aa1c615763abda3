package repository

import (
	"sync"

	"github.com/google/uuid"

	"rental-analyzer/domain"
)

// AnalysisRepositoryMemory is an in-memory implementation of
// AnalysisRepository. Safe for concurrent handlers.
type AnalysisRepositoryMemory struct {
	mu   sync.RWMutex
	data []StoredAnalysis
}

// NewAnalysisRepositoryMemory creates a new in-memory analysis repository.
func NewAnalysisRepositoryMemory() *AnalysisRepositoryMemory {
	return &AnalysisRepositoryMemory{
		data: []StoredAnalysis{},
	}
}

// Save stores the comparison and returns its generated id.
func (r *AnalysisRepositoryMemory) Save(
	cfg domain.AnalysisConfig,
	result domain.ComparisonResult,
) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.data = append(r.data, StoredAnalysis{
		ID:     id,
		Config: cfg,
		Result: result,
	})
	return id, nil
}

// List returns a copy of every stored analysis, oldest first.
func (r *AnalysisRepositoryMemory) List() []StoredAnalysis {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StoredAnalysis, len(r.data))
	copy(out, r.data)
	return out
}
