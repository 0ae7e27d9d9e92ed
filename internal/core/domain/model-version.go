package domain

import (
	"fmt"
	"time"
)

type VersionStatus string

const (
	VersionStatusPending VersionStatus = "PENDING_REGISTRATION"
	VersionStatusReady   VersionStatus = "READY"
	VersionStatusFailed  VersionStatus = "FAILED_REGISTRATION"
)

// ModelVersion is one registry entry. The registry owns it; this service
// only reads it and asks for stage transitions.
type ModelVersion struct {
	Name          string        `json:"name"`
	Version       int           `json:"version"`
	CurrentStage  Stage         `json:"current_stage"`
	Description   string        `json:"description"`
	Source        string        `json:"source"`
	RunID         string        `json:"run_id"`
	Status        VersionStatus `json:"status"`
	StatusMessage string        `json:"status_message,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// URI is the models:/ form understood by MLflow model loaders.
func (v *ModelVersion) URI() string {
	return ModelVersionURI(v.Name, v.Version)
}

func ModelVersionURI(name string, version int) string {
	return fmt.Sprintf("models:/%s/%d", name, version)
}

// ModelInfo is written by the training step after logging a model to a run.
type ModelInfo struct {
	RunID     string `json:"run_id"`
	ModelPath string `json:"model_path"`
}

func (m ModelInfo) Validate() error {
	if m.RunID == "" || m.ModelPath == "" {
		return ErrInvalidModelInfo
	}
	return nil
}

// ModelURI is the runs:/ source registered as a new version.
func (m ModelInfo) ModelURI() string {
	return fmt.Sprintf("runs:/%s/%s", m.RunID, m.ModelPath)
}
