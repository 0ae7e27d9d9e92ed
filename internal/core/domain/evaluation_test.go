package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholds_Shortfalls(t *testing.T) {
	th := DefaultThresholds()

	assert.Empty(t, th.Shortfalls(Metrics{Accuracy: 0.40, Precision: 0.9, Recall: 0.5, F1: 0.6}))

	got := th.Shortfalls(Metrics{Accuracy: 0.35, Precision: 0.9, Recall: 0.2, F1: 0.6})
	assert.Equal(t, []string{
		"accuracy 0.3500 is below threshold 0.40",
		"recall 0.2000 is below threshold 0.40",
	}, got)
}

func TestEvaluationReport(t *testing.T) {
	report := &EvaluationReport{
		ModelName: "my_model",
		Version:   2,
		Stage:     StageProduction,
		Checks: []CheckResult{
			{Name: CheckModelLoaded, Passed: true},
			{Name: CheckSignature, Passed: true},
		},
	}
	assert.True(t, report.Passed())
	assert.NoError(t, report.Err())

	report.Checks = append(report.Checks, CheckResult{Name: CheckPerformance, Detail: "f1 0.1000 is below threshold 0.40"})
	assert.False(t, report.Passed())

	err := report.Err()
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, err.Error(), "performance: f1 0.1000 is below threshold 0.40")

	summary := report.Summary()
	assert.Contains(t, summary, "my_model version 2 (Production)")
	assert.Contains(t, summary, "[PASS] signature")
	assert.Contains(t, summary, "[FAIL] performance")
}
