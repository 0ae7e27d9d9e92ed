package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CheckModelLoaded = "model_loaded"
	CheckSignature   = "signature"
	CheckPerformance = "performance"
)

// Metrics holds binary classification scores against the holdout set.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Thresholds are inclusive lower bounds for each metric.
type Thresholds struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Accuracy: 0.40, Precision: 0.40, Recall: 0.40, F1: 0.40}
}

// Shortfalls lists every metric below its threshold, in a fixed order.
func (t Thresholds) Shortfalls(m Metrics) []string {
	var out []string
	check := func(name string, got, want float64) {
		if got < want {
			out = append(out, fmt.Sprintf("%s %.4f is below threshold %.2f", name, got, want))
		}
	}
	check("accuracy", m.Accuracy, t.Accuracy)
	check("precision", m.Precision, t.Precision)
	check("recall", m.Recall, t.Recall)
	check("f1", m.F1, t.F1)
	return out
}

type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

type EvaluationReport struct {
	ModelName string        `json:"model_name"`
	Version   int           `json:"version"`
	Stage     Stage         `json:"stage"`
	Checks    []CheckResult `json:"checks"`
	Metrics   *Metrics      `json:"metrics,omitempty"`
}

func (r *EvaluationReport) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Err is nil when every check passed, otherwise an ErrCheckFailed naming
// each failing check.
func (r *EvaluationReport) Err() error {
	var errs []error
	for _, c := range r.Checks {
		if c.Passed {
			continue
		}
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrCheckFailed, c.Name, c.Detail))
	}
	return errors.Join(errs...)
}

func (r *EvaluationReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s version %d (%s)\n", r.ModelName, r.Version, r.Stage)
	for _, c := range r.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  [%s] %s", status, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, ": %s", c.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Dataset is a labelled holdout matrix. Columns names the feature columns.
type Dataset struct {
	Columns []string
	Rows    [][]float64
	Labels  []float64
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}
