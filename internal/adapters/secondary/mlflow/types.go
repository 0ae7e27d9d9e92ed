package mlflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"model-registry-ops/internal/core/domain"
)

// MLflow REST API response structures

type modelVersion struct {
	Name                 string  `json:"name"`
	Version              flexInt `json:"version"`
	CreationTimestamp    flexInt `json:"creation_timestamp"`
	LastUpdatedTimestamp flexInt `json:"last_updated_timestamp"`
	CurrentStage         string  `json:"current_stage"`
	Description          string  `json:"description"`
	Source               string  `json:"source"`
	RunID                string  `json:"run_id"`
	Status               string  `json:"status"`
	StatusMessage        string  `json:"status_message"`
}

type latestVersionsRequest struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

type latestVersionsResponse struct {
	ModelVersions []modelVersion `json:"model_versions"`
}

type createRegisteredModelRequest struct {
	Name string `json:"name"`
}

type createModelVersionRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	RunID  string `json:"run_id,omitempty"`
}

type transitionStageRequest struct {
	Name                    string `json:"name"`
	Version                 string `json:"version"`
	Stage                   string `json:"stage"`
	ArchiveExistingVersions bool   `json:"archive_existing_versions"`
}

type modelVersionResponse struct {
	ModelVersion modelVersion `json:"model_version"`
}

type downloadURIResponse struct {
	ArtifactURI string `json:"artifact_uri"`
}

// apiError is the body MLflow sends with any non-2xx status.
type apiError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// flexInt decodes integers MLflow may send either as JSON numbers or as
// decimal strings (versions are always strings).
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parse integer %q: %w", s, err)
		}
		*f = flexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func (mv modelVersion) toDomain() *domain.ModelVersion {
	stage, err := domain.ParseStage(mv.CurrentStage)
	if err != nil {
		stage = domain.StageNone
	}
	return &domain.ModelVersion{
		Name:          mv.Name,
		Version:       int(mv.Version),
		CurrentStage:  stage,
		Description:   mv.Description,
		Source:        mv.Source,
		RunID:         mv.RunID,
		Status:        domain.VersionStatus(mv.Status),
		StatusMessage: mv.StatusMessage,
		CreatedAt:     millis(int64(mv.CreationTimestamp)),
		UpdatedAt:     millis(int64(mv.LastUpdatedTimestamp)),
	}
}

func millis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
