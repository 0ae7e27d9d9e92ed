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

func TestStageResolver_Resolve_PromotionPrefersStaging(t *testing.T) {
	registry := testutil.NewFakeRegistry().
		Add("my_model", 1, domain.StageNone).
		Add("my_model", 2, domain.StageStaging).
		Add("my_model", 3, domain.StageProduction)
	resolver := NewStageResolver(registry)

	v, err := resolver.Resolve(context.Background(), "my_model", domain.PromotionPriority)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Version)
	assert.Equal(t, domain.StageStaging, v.CurrentStage)
}

func TestStageResolver_Resolve_EvaluationPrefersProduction(t *testing.T) {
	registry := testutil.NewFakeRegistry().
		Add("my_model", 2, domain.StageStaging).
		Add("my_model", 3, domain.StageProduction)
	resolver := NewStageResolver(registry)

	v, err := resolver.Resolve(context.Background(), "my_model", domain.EvaluationPriority)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Version)
}

func TestStageResolver_Resolve_NewestWithinStage(t *testing.T) {
	registry := testutil.NewFakeRegistry().
		Add("my_model", 1, domain.StageNone).
		Add("my_model", 4, domain.StageNone).
		Add("my_model", 2, domain.StageNone)
	resolver := NewStageResolver(registry)

	v, err := resolver.Resolve(context.Background(), "my_model", domain.PromotionPriority)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Version)
}

func TestStageResolver_Resolve_FallsBackThroughPriority(t *testing.T) {
	registry := testutil.NewFakeRegistry().Add("my_model", 5, domain.StageProduction)
	resolver := NewStageResolver(registry)

	v, err := resolver.Resolve(context.Background(), "my_model", domain.PromotionPriority)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Version)
}

func TestStageResolver_Resolve_NoVersionInAnyStage(t *testing.T) {
	registry := testutil.NewFakeRegistry().Add("my_model", 1, domain.StageArchived)
	resolver := NewStageResolver(registry)

	_, err := resolver.Resolve(context.Background(), "my_model", domain.PromotionPriority)
	assert.ErrorIs(t, err, domain.ErrNoVersionFound)
	assert.Contains(t, err.Error(), "Staging,None,Production")
}

func TestStageResolver_Resolve_UnknownModel(t *testing.T) {
	resolver := NewStageResolver(testutil.NewFakeRegistry())

	_, err := resolver.Resolve(context.Background(), "missing", domain.PromotionPriority)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestStageResolver_Resolve_StopsAtFirstMatch(t *testing.T) {
	registry := new(testutil.MockRegistryClient)
	resolver := NewStageResolver(registry)

	registry.On("GetLatestVersions", mock.Anything, "my_model", []domain.Stage{domain.StageStaging}).
		Return([]*domain.ModelVersion{}, nil).Once()
	registry.On("GetLatestVersions", mock.Anything, "my_model", []domain.Stage{domain.StageNone}).
		Return([]*domain.ModelVersion{{Name: "my_model", Version: 7, CurrentStage: domain.StageNone}}, nil).Once()

	v, err := resolver.Resolve(context.Background(), "my_model", domain.PromotionPriority)
	require.NoError(t, err)
	assert.Equal(t, 7, v.Version)
	registry.AssertExpectations(t)
	registry.AssertNotCalled(t, "GetLatestVersions", mock.Anything, "my_model", []domain.Stage{domain.StageProduction})
}

func TestStageResolver_Resolve_RegistryError(t *testing.T) {
	registry := new(testutil.MockRegistryClient)
	resolver := NewStageResolver(registry)

	registry.On("GetLatestVersions", mock.Anything, "my_model", mock.Anything).
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrRegistry))

	_, err := resolver.Resolve(context.Background(), "my_model", domain.EvaluationPriority)
	assert.ErrorIs(t, err, domain.ErrRegistry)
	assert.NotErrorIs(t, err, domain.ErrNoVersionFound)
}

func TestStageResolver_Resolve_InvalidInput(t *testing.T) {
	registry := new(testutil.MockRegistryClient)
	resolver := NewStageResolver(registry)

	_, err := resolver.Resolve(context.Background(), "", domain.PromotionPriority)
	assert.ErrorIs(t, err, domain.ErrInvalidModelName)

	_, err = resolver.Resolve(context.Background(), "my_model", domain.StagePriority{})
	assert.ErrorIs(t, err, domain.ErrInvalidStagePriority)

	registry.AssertNotCalled(t, "GetLatestVersions", mock.Anything, mock.Anything, mock.Anything)
}
