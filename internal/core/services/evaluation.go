package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/telemetry"
)

// SignatureProbe is the sample sentence pushed through the vectorizer and
// model by the signature check.
const SignatureProbe = "hi how are you"

type EvaluationOptions struct {
	Priority       domain.StagePriority
	VectorizerPath string
	HoldoutPath    string
	Thresholds     domain.Thresholds
}

type EvaluationService struct {
	registry  ports.RegistryClient
	resolver  *StageResolver
	artifacts ports.ArtifactStore
	predictor ports.Predictor
	opts      EvaluationOptions
}

func NewEvaluationService(registry ports.RegistryClient, resolver *StageResolver, artifacts ports.ArtifactStore, predictor ports.Predictor, opts EvaluationOptions) *EvaluationService {
	if len(opts.Priority) == 0 {
		opts.Priority = domain.EvaluationPriority
	}
	return &EvaluationService{
		registry:  registry,
		resolver:  resolver,
		artifacts: artifacts,
		predictor: predictor,
		opts:      opts,
	}
}

// Evaluate runs every check against the current model. A returned error
// means the checks could not run; failed checks are reported in the
// report and surfaced by report.Err.
func (s *EvaluationService) Evaluate(ctx context.Context, name string) (*domain.EvaluationReport, error) {
	report, err := s.evaluate(ctx, name)
	if err != nil {
		telemetry.ObserveWorkflow(telemetry.WorkflowEvaluate, err)
		return nil, err
	}
	telemetry.ObserveWorkflow(telemetry.WorkflowEvaluate, report.Err())
	return report, nil
}

func (s *EvaluationService) evaluate(ctx context.Context, name string) (*domain.EvaluationReport, error) {
	// 1. Resolve the deployed version
	current, err := s.resolver.Resolve(ctx, name, s.opts.Priority)
	if err != nil {
		return nil, err
	}

	report := &domain.EvaluationReport{
		ModelName: name,
		Version:   current.Version,
		Stage:     current.CurrentStage,
	}
	logger := log.WithFields(log.Fields{"model": name, "version": current.Version})

	// 2. Load the model and the vectorizer
	report.Checks = append(report.Checks, s.checkLoaded(ctx, current))

	vectorizer, err := s.artifacts.LoadVectorizer(s.opts.VectorizerPath)
	if err != nil {
		return nil, err
	}
	holdout, err := s.artifacts.LoadDataset(s.opts.HoldoutPath)
	if err != nil {
		return nil, err
	}

	// 3. Signature
	report.Checks = append(report.Checks, s.checkSignature(ctx, vectorizer))

	// 4. Performance on holdout data
	perf, metrics := s.checkPerformance(ctx, holdout)
	report.Checks = append(report.Checks, perf)
	report.Metrics = metrics

	if report.Passed() {
		logger.Info("all evaluation checks passed")
	} else {
		logger.WithError(report.Err()).Warn("evaluation checks failed")
	}
	return report, nil
}

func (s *EvaluationService) checkLoaded(ctx context.Context, v *domain.ModelVersion) domain.CheckResult {
	res := domain.CheckResult{Name: domain.CheckModelLoaded}

	uri, err := s.registry.GetDownloadURI(ctx, v.Name, v.Version)
	if err != nil {
		res.Detail = fmt.Sprintf("resolve %s: %v", v.URI(), err)
		return res
	}
	if err := s.predictor.Ping(ctx); err != nil {
		res.Detail = fmt.Sprintf("model at %s is not being served: %v", uri, err)
		return res
	}

	res.Passed = true
	res.Detail = fmt.Sprintf("%s loaded from %s", v.URI(), uri)
	return res
}

func (s *EvaluationService) checkSignature(ctx context.Context, vectorizer ports.Vectorizer) domain.CheckResult {
	res := domain.CheckResult{Name: domain.CheckSignature}

	rows := vectorizer.Transform([]string{SignatureProbe})
	if len(rows) != 1 {
		res.Detail = fmt.Sprintf("vectorizer returned %d rows for 1 input", len(rows))
		return res
	}
	if got, want := len(rows[0]), vectorizer.FeatureCount(); got != want {
		res.Detail = fmt.Sprintf("input has %d columns, vectorizer has %d features", got, want)
		return res
	}

	predictions, err := s.predictor.Predict(ctx, indexColumns(len(rows[0])), rows)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	if len(predictions) != len(rows) {
		res.Detail = fmt.Sprintf("got %d predictions for %d rows", len(predictions), len(rows))
		return res
	}

	res.Passed = true
	res.Detail = fmt.Sprintf("%d features, %d prediction", len(rows[0]), len(predictions))
	return res
}

func (s *EvaluationService) checkPerformance(ctx context.Context, holdout *domain.Dataset) (domain.CheckResult, *domain.Metrics) {
	res := domain.CheckResult{Name: domain.CheckPerformance}

	predictions, err := s.predictor.Predict(ctx, holdout.Columns, holdout.Rows)
	if err != nil {
		res.Detail = err.Error()
		return res, nil
	}

	metrics, err := ClassificationMetrics(holdout.Labels, predictions)
	if err != nil {
		res.Detail = err.Error()
		return res, nil
	}

	if shortfalls := s.opts.Thresholds.Shortfalls(metrics); len(shortfalls) > 0 {
		res.Detail = strings.Join(shortfalls, "; ")
		return res, &metrics
	}

	res.Passed = true
	res.Detail = fmt.Sprintf("accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f",
		metrics.Accuracy, metrics.Precision, metrics.Recall, metrics.F1)
	return res, &metrics
}

// indexColumns names columns "0".."n-1", matching a DataFrame built from a
// dense vectorizer output.
func indexColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("%d", i)
	}
	return cols
}
