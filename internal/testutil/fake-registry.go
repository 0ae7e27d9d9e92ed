package testutil

import (
	"context"
	"fmt"
	"sync"

	"model-registry-ops/internal/core/domain"
)

// FakeRegistry is an in-memory RegistryClient with MLflow stage semantics,
// for workflow tests that care about end state rather than calls.
type FakeRegistry struct {
	mu       sync.Mutex
	models   map[string][]*domain.ModelVersion
	failures map[int]error

	// Transitions lists every TransitionStage call as "v<N>:<stage>".
	Transitions []string
}

func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		models:   map[string][]*domain.ModelVersion{},
		failures: map[int]error{},
	}
}

// Add stores a READY version in the given stage.
func (f *FakeRegistry) Add(name string, version int, stage domain.Stage) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.models[name] = append(f.models[name], &domain.ModelVersion{
		Name:         name,
		Version:      version,
		CurrentStage: stage,
		Status:       domain.VersionStatusReady,
	})
	return f
}

// FailTransition makes every TransitionStage call for version return err.
func (f *FakeRegistry) FailTransition(version int, err error) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[version] = err
	return f
}

// Stages maps each version of name to its current stage.
func (f *FakeRegistry) Stages(name string) map[int]domain.Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int]domain.Stage{}
	for _, v := range f.models[name] {
		out[v.Version] = v.CurrentStage
	}
	return out
}

// GetLatestVersions returns every matching version per stage, like MLflow
// when several versions share a stage.
func (f *FakeRegistry) GetLatestVersions(_ context.Context, name string, stages []domain.Stage) ([]*domain.ModelVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	versions, ok := f.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
	}
	var out []*domain.ModelVersion
	for _, st := range stages {
		for _, v := range versions {
			if v.CurrentStage == st {
				cp := *v
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (f *FakeRegistry) CreateRegisteredModel(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.models[name]; ok {
		return domain.ErrModelAlreadyExists
	}
	f.models[name] = nil
	return nil
}

func (f *FakeRegistry) CreateModelVersion(_ context.Context, name, source, runID string) (*domain.ModelVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	versions, ok := f.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
	}
	next := 1
	for _, v := range versions {
		if v.Version >= next {
			next = v.Version + 1
		}
	}
	v := &domain.ModelVersion{
		Name:         name,
		Version:      next,
		CurrentStage: domain.StageNone,
		Source:       source,
		RunID:        runID,
		Status:       domain.VersionStatusReady,
	}
	f.models[name] = append(versions, v)
	cp := *v
	return &cp, nil
}

func (f *FakeRegistry) GetModelVersion(_ context.Context, name string, version int) (*domain.ModelVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.find(name, version)
	if v == nil {
		return nil, fmt.Errorf("%w: %s version %d", domain.ErrModelNotFound, name, version)
	}
	cp := *v
	return &cp, nil
}

func (f *FakeRegistry) TransitionStage(_ context.Context, name string, version int, stage domain.Stage, archiveExisting bool) (*domain.ModelVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Transitions = append(f.Transitions, fmt.Sprintf("v%d:%s", version, stage))
	if err := f.failures[version]; err != nil {
		return nil, err
	}
	v := f.find(name, version)
	if v == nil {
		return nil, fmt.Errorf("%w: %s version %d", domain.ErrModelNotFound, name, version)
	}
	if archiveExisting {
		for _, other := range f.models[name] {
			if other.Version != version && other.CurrentStage == stage {
				other.CurrentStage = domain.StageArchived
			}
		}
	}
	v.CurrentStage = stage
	cp := *v
	return &cp, nil
}

func (f *FakeRegistry) GetDownloadURI(_ context.Context, name string, version int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.find(name, version) == nil {
		return "", fmt.Errorf("%w: %s version %d", domain.ErrModelNotFound, name, version)
	}
	return fmt.Sprintf("mlflow-artifacts:/%s/%d/artifacts/model", name, version), nil
}

func (f *FakeRegistry) find(name string, version int) *domain.ModelVersion {
	for _, v := range f.models[name] {
		if v.Version == version {
			return v
		}
	}
	return nil
}
