package ports

import (
	"context"

	"model-registry-ops/internal/core/domain"
)

// RegistryClient is the subset of the MLflow model registry the workflows
// use. Implementations return errors wrapping the domain registry errors.
type RegistryClient interface {
	// GetLatestVersions returns the newest version in each requested stage.
	GetLatestVersions(ctx context.Context, name string, stages []domain.Stage) ([]*domain.ModelVersion, error)

	CreateRegisteredModel(ctx context.Context, name string) error
	CreateModelVersion(ctx context.Context, name, source, runID string) (*domain.ModelVersion, error)
	GetModelVersion(ctx context.Context, name string, version int) (*domain.ModelVersion, error)
	TransitionStage(ctx context.Context, name string, version int, stage domain.Stage, archiveExisting bool) (*domain.ModelVersion, error)

	// GetDownloadURI resolves where the version's model files live.
	GetDownloadURI(ctx context.Context, name string, version int) (string, error)
}
