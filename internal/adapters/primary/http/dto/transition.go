package dto

import (
	"time"

	"github.com/google/uuid"

	"model-registry-ops/internal/core/domain"
)

type TransitionResponse struct {
	ID        uuid.UUID `json:"id"`
	ModelName string    `json:"model_name"`
	Version   int       `json:"version"`
	FromStage string    `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	Action    string    `json:"action"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt string    `json:"created_at"`
}

func ToTransitionResponse(t *domain.StageTransition) TransitionResponse {
	return TransitionResponse{
		ID:        t.ID,
		ModelName: t.ModelName,
		Version:   t.Version,
		FromStage: string(t.FromStage),
		ToStage:   string(t.ToStage),
		Action:    string(t.Action),
		RequestID: t.RequestID,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

type ListTransitionsResponse struct {
	Items      []TransitionResponse `json:"items"`
	Total      int                  `json:"total"`
	PageSize   int                  `json:"page_size"`
	NextOffset int                  `json:"next_offset"`
}
