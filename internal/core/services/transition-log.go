package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/telemetry"
)

// TransitionRecorder writes the audit trail of stage changes. A nil
// repository turns recording into a no-op and listing into
// ErrTransitionLogOff.
type TransitionRecorder struct {
	repo ports.TransitionRepository
}

func NewTransitionRecorder(repo ports.TransitionRepository) *TransitionRecorder {
	return &TransitionRecorder{repo: repo}
}

func (r *TransitionRecorder) Enabled() bool {
	return r != nil && r.repo != nil
}

// Record never fails the caller: the registry already holds the new stage.
func (r *TransitionRecorder) Record(ctx context.Context, name string, version int, from, to domain.Stage, action domain.TransitionAction) {
	if !r.Enabled() {
		return
	}
	t := domain.NewStageTransition(name, version, from, to, action, telemetry.RequestID(ctx))
	if err := r.repo.Record(ctx, t); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model":   name,
			"version": version,
			"action":  action,
		}).Warn("record stage transition failed")
	}
}

func (r *TransitionRecorder) List(ctx context.Context, filter ports.TransitionListFilter) ([]*domain.StageTransition, int, error) {
	if !r.Enabled() {
		return nil, 0, domain.ErrTransitionLogOff
	}
	if filter.ModelName == "" {
		return nil, 0, domain.ErrInvalidModelName
	}
	return r.repo.ListByModel(ctx, NormalizeTransitionFilter(filter))
}

// NormalizeTransitionFilter applies the default and maximum page size.
func NormalizeTransitionFilter(filter ports.TransitionListFilter) ports.TransitionListFilter {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
