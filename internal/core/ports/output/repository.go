package ports

import (
	"context"

	"model-registry-ops/internal/core/domain"
)

type TransitionListFilter struct {
	ModelName string
	Limit     int
	Offset    int
}

// TransitionRepository stores the audit trail of stage changes.
type TransitionRepository interface {
	Record(ctx context.Context, t *domain.StageTransition) error
	ListByModel(ctx context.Context, filter TransitionListFilter) ([]*domain.StageTransition, int, error)
}
