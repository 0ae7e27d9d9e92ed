package dto

import (
	"time"

	"model-registry-ops/internal/core/domain"
)

type ModelVersionResponse struct {
	Name          string `json:"name"`
	Version       int    `json:"version"`
	CurrentStage  string `json:"current_stage"`
	URI           string `json:"uri"`
	Source        string `json:"source"`
	RunID         string `json:"run_id"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

func ToModelVersionResponse(v *domain.ModelVersion) ModelVersionResponse {
	return ModelVersionResponse{
		Name:          v.Name,
		Version:       v.Version,
		CurrentStage:  string(v.CurrentStage),
		URI:           v.URI(),
		Source:        v.Source,
		RunID:         v.RunID,
		Status:        string(v.Status),
		StatusMessage: v.StatusMessage,
		CreatedAt:     formatTime(v.CreatedAt),
		UpdatedAt:     formatTime(v.UpdatedAt),
	}
}

type ResolveResponse struct {
	Priority []string             `json:"priority"`
	Version  ModelVersionResponse `json:"version"`
}

// RegisterModelRequest may be empty, in which case the model info artifact
// written by training is used.
type RegisterModelRequest struct {
	RunID     string `json:"run_id"`
	ModelPath string `json:"model_path"`
}

func (r RegisterModelRequest) IsEmpty() bool {
	return r.RunID == "" && r.ModelPath == ""
}

func (r RegisterModelRequest) ToModelInfo() domain.ModelInfo {
	return domain.ModelInfo{RunID: r.RunID, ModelPath: r.ModelPath}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
