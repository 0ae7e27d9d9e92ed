package dto

import (
	"model-registry-ops/internal/core/domain"
)

type PromotionResponse struct {
	*domain.PromotionResult
	Message string `json:"message"`
}

type EvaluationResponse struct {
	*domain.EvaluationReport
	Passed bool `json:"passed"`
}
