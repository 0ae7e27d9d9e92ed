package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

// StageResolver finds the "current" version of a model by probing stages in
// priority order. Every call goes to the registry; nothing is cached.
type StageResolver struct {
	registry ports.RegistryClient
}

func NewStageResolver(registry ports.RegistryClient) *StageResolver {
	return &StageResolver{registry: registry}
}

// Resolve returns the newest version held by the first stage in priority
// that has any version at all. Lower priority stages are never consulted
// once a match is found.
func (r *StageResolver) Resolve(ctx context.Context, name string, priority domain.StagePriority) (*domain.ModelVersion, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}

	for _, stage := range priority {
		versions, err := r.registry.GetLatestVersions(ctx, name, []domain.Stage{stage})
		if err != nil {
			return nil, fmt.Errorf("get latest %s versions of %s: %w", stage, name, err)
		}

		if latest := newest(versions); latest != nil {
			log.WithFields(log.Fields{
				"model":   name,
				"version": latest.Version,
				"stage":   stage,
			}).Debug("resolved current model version")
			return latest, nil
		}
	}

	return nil, fmt.Errorf("%w: model %q, stages %s", domain.ErrNoVersionFound, name, priority)
}

func newest(versions []*domain.ModelVersion) *domain.ModelVersion {
	var best *domain.ModelVersion
	for _, v := range versions {
		if v == nil {
			continue
		}
		if best == nil || v.Version > best.Version {
			best = v
		}
	}
	return best
}
