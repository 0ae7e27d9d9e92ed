package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/telemetry"
)

type PromotionOptions struct {
	Priority domain.StagePriority
	// StrictArchive aborts the promotion when any previous Production
	// version cannot be archived.
	StrictArchive bool
}

type PromotionService struct {
	registry    ports.RegistryClient
	resolver    *StageResolver
	transitions *TransitionRecorder
	opts        PromotionOptions
}

func NewPromotionService(registry ports.RegistryClient, resolver *StageResolver, transitions *TransitionRecorder, opts PromotionOptions) *PromotionService {
	if len(opts.Priority) == 0 {
		opts.Priority = domain.PromotionPriority
	}
	return &PromotionService{
		registry:    registry,
		resolver:    resolver,
		transitions: transitions,
		opts:        opts,
	}
}

func (s *PromotionService) Promote(ctx context.Context, name string) (*domain.PromotionResult, error) {
	result, err := s.promote(ctx, name)
	telemetry.ObserveWorkflow(telemetry.WorkflowPromote, err)
	return result, err
}

func (s *PromotionService) promote(ctx context.Context, name string) (*domain.PromotionResult, error) {
	// 1. Resolve the candidate
	candidate, err := s.resolver.Resolve(ctx, name, s.opts.Priority)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{"model": name, "version": candidate.Version})
	result := &domain.PromotionResult{
		ModelName:     name,
		Version:       candidate.Version,
		PreviousStage: candidate.CurrentStage,
		Archived:      []int{},
	}

	// 2. Archive whatever is in Production now
	live, err := s.registry.GetLatestVersions(ctx, name, []domain.Stage{domain.StageProduction})
	if err != nil {
		return nil, fmt.Errorf("get production versions of %s: %w", name, err)
	}

	for _, v := range live {
		if v.Version == candidate.Version {
			continue
		}
		if _, err := s.registry.TransitionStage(ctx, name, v.Version, domain.StageArchived, false); err != nil {
			logger.WithError(err).WithField("archived_version", v.Version).Warn("archive production version failed")
			result.ArchiveFailures = append(result.ArchiveFailures, domain.ArchiveFailure{
				Version: v.Version,
				Error:   err.Error(),
			})
			continue
		}
		result.Archived = append(result.Archived, v.Version)
		s.transitions.Record(ctx, name, v.Version, domain.StageProduction, domain.StageArchived, domain.TransitionActionArchive)
	}

	if s.opts.StrictArchive && len(result.ArchiveFailures) > 0 {
		return result, fmt.Errorf("%w: %d of %d versions of %s", domain.ErrArchiveFailed,
			len(result.ArchiveFailures), len(result.ArchiveFailures)+len(result.Archived), name)
	}

	// 3. Promote the candidate
	if _, err := s.registry.TransitionStage(ctx, name, candidate.Version, domain.StageProduction, false); err != nil {
		return result, fmt.Errorf("promote %s version %d: %w", name, candidate.Version, err)
	}
	s.transitions.Record(ctx, name, candidate.Version, candidate.CurrentStage, domain.StageProduction, domain.TransitionActionPromote)

	logger.WithField("archived", result.Archived).Infof("model version %d promoted to Production", candidate.Version)
	return result, nil
}
