package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/telemetry"
)

type RegistrationOptions struct {
	ModelInfoPath string
	// WaitTimeout bounds how long to wait for the new version to become
	// READY. Zero skips the wait.
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

type RegistrationService struct {
	registry    ports.RegistryClient
	artifacts   ports.ArtifactStore
	transitions *TransitionRecorder
	opts        RegistrationOptions
}

func NewRegistrationService(registry ports.RegistryClient, artifacts ports.ArtifactStore, transitions *TransitionRecorder, opts RegistrationOptions) *RegistrationService {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &RegistrationService{
		registry:    registry,
		artifacts:   artifacts,
		transitions: transitions,
		opts:        opts,
	}
}

// RegisterFromArtifact reads the model info written by training and
// registers it.
func (s *RegistrationService) RegisterFromArtifact(ctx context.Context, name string) (*domain.ModelVersion, error) {
	info, err := s.artifacts.LoadModelInfo(s.opts.ModelInfoPath)
	if err != nil {
		log.WithError(err).WithField("path", s.opts.ModelInfoPath).Error("load model info failed")
		telemetry.ObserveWorkflow(telemetry.WorkflowRegister, err)
		return nil, err
	}
	log.WithField("path", s.opts.ModelInfoPath).Debug("model info loaded")
	return s.Register(ctx, name, *info)
}

// Register creates a new version from info and moves it to Staging.
func (s *RegistrationService) Register(ctx context.Context, name string, info domain.ModelInfo) (*domain.ModelVersion, error) {
	version, err := s.register(ctx, name, info)
	if err != nil {
		log.WithError(err).WithField("model", name).Error("model registration failed")
	}
	telemetry.ObserveWorkflow(telemetry.WorkflowRegister, err)
	return version, err
}

func (s *RegistrationService) register(ctx context.Context, name string, info domain.ModelInfo) (*domain.ModelVersion, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	// 1. Ensure the registered model exists
	if err := s.registry.CreateRegisteredModel(ctx, name); err != nil && !errors.Is(err, domain.ErrModelAlreadyExists) {
		return nil, fmt.Errorf("create registered model %s: %w", name, err)
	}

	// 2. Create the version from the run artifact
	uri := info.ModelURI()
	version, err := s.registry.CreateModelVersion(ctx, name, uri, info.RunID)
	if err != nil {
		return nil, fmt.Errorf("create model version from %s: %w", uri, err)
	}

	// 3. Wait for the registry to finish copying artifacts
	if version, err = s.awaitReady(ctx, version); err != nil {
		return nil, err
	}

	// 4. Move it to Staging
	staged, err := s.registry.TransitionStage(ctx, name, version.Version, domain.StageStaging, false)
	if err != nil {
		return nil, fmt.Errorf("transition %s version %d to Staging: %w", name, version.Version, err)
	}
	s.transitions.Record(ctx, name, version.Version, version.CurrentStage, domain.StageStaging, domain.TransitionActionRegister)

	log.WithFields(log.Fields{
		"model":   name,
		"version": staged.Version,
		"source":  uri,
	}).Infof("model %s version %d registered and transitioned to Staging", name, staged.Version)
	return staged, nil
}

func (s *RegistrationService) awaitReady(ctx context.Context, version *domain.ModelVersion) (*domain.ModelVersion, error) {
	if s.opts.WaitTimeout <= 0 || version.Status == domain.VersionStatusReady || version.Status == "" {
		return version, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	current := version
	for {
		switch current.Status {
		case domain.VersionStatusReady:
			return current, nil
		case domain.VersionStatusFailed:
			return nil, fmt.Errorf("%w: %s version %d: %s", domain.ErrRegistrationFailed,
				current.Name, current.Version, current.StatusMessage)
		}

		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("wait for %s version %d: %w", current.Name, current.Version, ctx.Err())
			}
			return nil, fmt.Errorf("%w: %s version %d still %s after %s", domain.ErrRegistrationTimeout,
				current.Name, current.Version, current.Status, s.opts.WaitTimeout)
		case <-ticker.C:
		}

		next, err := s.registry.GetModelVersion(ctx, version.Name, version.Version)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			return nil, fmt.Errorf("get %s version %d: %w", version.Name, version.Version, err)
		}
		current = next
	}
}
