package repository

import "rental-analyzer/domain"

// StoredAnalysis is one completed comparison kept for later review.
type StoredAnalysis struct {
	ID     string                  `json:"id"`
	Config domain.AnalysisConfig   `json:"config"`
	Result domain.ComparisonResult `json:"result"`
}

// AnalysisRepository persists completed comparisons. The engine itself is
// stateless; persistence is a collaborator concern.
type AnalysisRepository interface {
	Save(cfg domain.AnalysisConfig, result domain.ComparisonResult) (string, error)
	List() []StoredAnalysis
}
