package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationMetrics(t *testing.T) {
	m, err := ClassificationMetrics(
		[]float64{1, 1, 0, 0, 1},
		[]float64{1, 0, 0, 1, 1},
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, m.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.Recall, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.F1, 1e-9)
}

func TestClassificationMetrics_NoPositives(t *testing.T) {
	m, err := ClassificationMetrics([]float64{0, 0, 0}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Zero(t, m.Precision)
	assert.Zero(t, m.Recall)
	assert.Zero(t, m.F1)
}

func TestClassificationMetrics_Invalid(t *testing.T) {
	_, err := ClassificationMetrics([]float64{1, 0}, []float64{1})
	assert.Error(t, err)

	_, err = ClassificationMetrics(nil, nil)
	assert.Error(t, err)
}
