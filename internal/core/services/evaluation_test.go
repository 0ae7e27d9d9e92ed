package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-registry-ops/internal/core/domain"
	"model-registry-ops/internal/testutil"
)

type evaluationFixture struct {
	registry   *testutil.FakeRegistry
	artifacts  *testutil.MockArtifactStore
	predictor  *testutil.MockPredictor
	vectorizer *testutil.MockVectorizer
	holdout    *domain.Dataset
	svc        *EvaluationService
}

func newEvaluationFixture() *evaluationFixture {
	f := &evaluationFixture{
		registry: testutil.NewFakeRegistry().
			Add("my_model", 2, domain.StageProduction).
			Add("my_model", 3, domain.StageStaging),
		artifacts:  new(testutil.MockArtifactStore),
		predictor:  new(testutil.MockPredictor),
		vectorizer: new(testutil.MockVectorizer),
		holdout: &domain.Dataset{
			Columns: []string{"0", "1", "2"},
			Rows:    [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}},
			Labels:  []float64{1, 0, 1, 0},
		},
	}
	f.svc = NewEvaluationService(f.registry, NewStageResolver(f.registry), f.artifacts, f.predictor, EvaluationOptions{
		VectorizerPath: "models/vectorizer.json",
		HoldoutPath:    "data/processed/test_bow.csv",
		Thresholds:     domain.DefaultThresholds(),
	})

	f.artifacts.On("LoadVectorizer", "models/vectorizer.json").Return(f.vectorizer, nil)
	f.artifacts.On("LoadDataset", "data/processed/test_bow.csv").Return(f.holdout, nil)
	f.vectorizer.On("FeatureCount").Return(3)
	return f
}

func (f *evaluationFixture) signatureRow(row []float64) {
	f.vectorizer.On("Transform", []string{SignatureProbe}).Return([][]float64{row})
}

func TestEvaluationService_Evaluate_AllChecksPass(t *testing.T) {
	f := newEvaluationFixture()
	f.signatureRow([]float64{0, 1, 0})
	f.predictor.On("Ping", mock.Anything).Return(nil)
	f.predictor.On("Predict", mock.Anything, []string{"0", "1", "2"}, [][]float64{{0, 1, 0}}).Return([]float64{1}, nil)
	f.predictor.On("Predict", mock.Anything, f.holdout.Columns, f.holdout.Rows).Return([]float64{1, 0, 1, 0}, nil)

	report, err := f.svc.Evaluate(context.Background(), "my_model")
	require.NoError(t, err)
	assert.True(t, report.Passed(), report.Summary())
	assert.NoError(t, report.Err())

	// Evaluation targets the live version, not the Staging candidate.
	assert.Equal(t, 2, report.Version)
	assert.Equal(t, domain.StageProduction, report.Stage)
	require.Len(t, report.Checks, 3)
	assert.Equal(t, domain.CheckModelLoaded, report.Checks[0].Name)
	assert.Equal(t, domain.CheckSignature, report.Checks[1].Name)
	assert.Equal(t, domain.CheckPerformance, report.Checks[2].Name)
	require.NotNil(t, report.Metrics)
	assert.Equal(t, 1.0, report.Metrics.Accuracy)
}

func TestEvaluationService_Evaluate_BelowThreshold(t *testing.T) {
	f := newEvaluationFixture()
	f.signatureRow([]float64{0, 1, 0})
	f.predictor.On("Ping", mock.Anything).Return(nil)
	f.predictor.On("Predict", mock.Anything, []string{"0", "1", "2"}, [][]float64{{0, 1, 0}}).Return([]float64{0}, nil)
	f.predictor.On("Predict", mock.Anything, f.holdout.Columns, f.holdout.Rows).Return([]float64{0, 0, 0, 0}, nil)

	report, err := f.svc.Evaluate(context.Background(), "my_model")
	require.NoError(t, err)
	assert.False(t, report.Passed())

	perf := report.Checks[2]
	assert.False(t, perf.Passed)
	assert.Contains(t, perf.Detail, "precision 0.0000 is below threshold 0.40")
	assert.Contains(t, perf.Detail, "recall 0.0000 is below threshold 0.40")
	assert.NotContains(t, perf.Detail, "accuracy")

	err = report.Err()
	assert.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Contains(t, err.Error(), "performance")
}

func TestEvaluationService_Evaluate_SignatureMismatch(t *testing.T) {
	f := newEvaluationFixture()
	f.signatureRow([]float64{0, 1})
	f.predictor.On("Ping", mock.Anything).Return(nil)
	f.predictor.On("Predict", mock.Anything, f.holdout.Columns, f.holdout.Rows).Return([]float64{1, 0, 1, 0}, nil)

	report, err := f.svc.Evaluate(context.Background(), "my_model")
	require.NoError(t, err)

	sig := report.Checks[1]
	assert.False(t, sig.Passed)
	assert.Contains(t, sig.Detail, "input has 2 columns, vectorizer has 3 features")
	// Performance still runs.
	assert.True(t, report.Checks[2].Passed)
}

func TestEvaluationService_Evaluate_ModelNotServed(t *testing.T) {
	f := newEvaluationFixture()
	f.signatureRow([]float64{0, 1, 0})
	f.predictor.On("Ping", mock.Anything).Return(fmt.Errorf("%w: ping: connection refused", domain.ErrPredictor))
	f.predictor.On("Predict", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: invocations: connection refused", domain.ErrPredictor))

	report, err := f.svc.Evaluate(context.Background(), "my_model")
	require.NoError(t, err)
	for _, c := range report.Checks {
		assert.False(t, c.Passed, c.Name)
	}
	assert.Contains(t, report.Checks[0].Detail, "is not being served")
	assert.Nil(t, report.Metrics)
}

func TestEvaluationService_Evaluate_NoCurrentVersion(t *testing.T) {
	f := newEvaluationFixture()
	registry := testutil.NewFakeRegistry().Add("my_model", 1, domain.StageArchived)
	svc := NewEvaluationService(registry, NewStageResolver(registry), f.artifacts, f.predictor, EvaluationOptions{})

	report, err := svc.Evaluate(context.Background(), "my_model")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNoVersionFound)
	f.predictor.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestEvaluationService_Evaluate_MissingVectorizer(t *testing.T) {
	registry := testutil.NewFakeRegistry().Add("my_model", 2, domain.StageProduction)
	artifacts := new(testutil.MockArtifactStore)
	predictor := new(testutil.MockPredictor)
	svc := NewEvaluationService(registry, NewStageResolver(registry), artifacts, predictor, EvaluationOptions{
		VectorizerPath: "models/vectorizer.json",
	})

	predictor.On("Ping", mock.Anything).Return(nil)
	artifacts.On("LoadVectorizer", "models/vectorizer.json").
		Return(nil, fmt.Errorf("%w: open vectorizer: no such file", domain.ErrArtifact))

	report, err := svc.Evaluate(context.Background(), "my_model")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrArtifact)
}
