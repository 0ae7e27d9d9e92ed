package services

import (
	"fmt"

	"model-registry-ops/internal/core/domain"
)

const positiveLabel = 1.0

// ClassificationMetrics scores binary predictions against labels with 1 as
// the positive class. Undefined ratios (no predicted or no actual
// positives) score 0.
func ClassificationMetrics(labels, predictions []float64) (domain.Metrics, error) {
	if len(labels) != len(predictions) {
		return domain.Metrics{}, fmt.Errorf("got %d predictions for %d labels", len(predictions), len(labels))
	}
	if len(labels) == 0 {
		return domain.Metrics{}, fmt.Errorf("no labelled rows to score")
	}

	var tp, fp, fn, correct float64
	for i, y := range labels {
		p := predictions[i]
		if p == y {
			correct++
		}
		switch {
		case p == positiveLabel && y == positiveLabel:
			tp++
		case p == positiveLabel:
			fp++
		case y == positiveLabel:
			fn++
		}
	}

	m := domain.Metrics{
		Accuracy:  correct / float64(len(labels)),
		Precision: ratio(tp, tp+fp),
		Recall:    ratio(tp, tp+fn),
	}
	m.F1 = ratio(2*m.Precision*m.Recall, m.Precision+m.Recall)
	return m, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
