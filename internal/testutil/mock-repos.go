package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

// MockRegistryClient is a mock of RegistryClient.
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) GetLatestVersions(ctx context.Context, name string, stages []domain.Stage) ([]*domain.ModelVersion, error) {
	args := m.Called(ctx, name, stages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ModelVersion), args.Error(1)
}

func (m *MockRegistryClient) CreateRegisteredModel(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRegistryClient) CreateModelVersion(ctx context.Context, name, source, runID string) (*domain.ModelVersion, error) {
	args := m.Called(ctx, name, source, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockRegistryClient) GetModelVersion(ctx context.Context, name string, version int) (*domain.ModelVersion, error) {
	args := m.Called(ctx, name, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockRegistryClient) TransitionStage(ctx context.Context, name string, version int, stage domain.Stage, archiveExisting bool) (*domain.ModelVersion, error) {
	args := m.Called(ctx, name, version, stage, archiveExisting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockRegistryClient) GetDownloadURI(ctx context.Context, name string, version int) (string, error) {
	args := m.Called(ctx, name, version)
	return args.String(0), args.Error(1)
}

// MockArtifactStore is a mock of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) LoadModelInfo(path string) (*domain.ModelInfo, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelInfo), args.Error(1)
}

func (m *MockArtifactStore) LoadVectorizer(path string) (ports.Vectorizer, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Vectorizer), args.Error(1)
}

func (m *MockArtifactStore) LoadDataset(path string) (*domain.Dataset, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

// MockPredictor is a mock of Predictor.
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPredictor) Predict(ctx context.Context, columns []string, rows [][]float64) ([]float64, error) {
	args := m.Called(ctx, columns, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockTransitionRepo is a mock of TransitionRepository.
type MockTransitionRepo struct {
	mock.Mock
}

func (m *MockTransitionRepo) Record(ctx context.Context, t *domain.StageTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransitionRepo) ListByModel(ctx context.Context, filter ports.TransitionListFilter) ([]*domain.StageTransition, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.StageTransition), args.Int(1), args.Error(2)
}

// MockVectorizer is a mock of Vectorizer.
type MockVectorizer struct {
	mock.Mock
}

func (m *MockVectorizer) Transform(docs []string) [][]float64 {
	args := m.Called(docs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([][]float64)
}

func (m *MockVectorizer) FeatureNames() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockVectorizer) FeatureCount() int {
	args := m.Called()
	return args.Int(0)
}
