package mlflow

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"model-registry-ops/internal/config"
	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
	"model-registry-ops/internal/telemetry"
)

const apiPrefix = "/api/2.0/mlflow"

// MLflow error codes the workflows react to.
const (
	codeResourceDoesNotExist  = "RESOURCE_DOES_NOT_EXIST"
	codeResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
)

type registryClient struct {
	http *resty.Client
}

// NewRegistryClient creates a model registry client for an MLflow tracking
// server.
func NewRegistryClient(cfg *config.TrackingConfig) ports.RegistryClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URI, "/")+apiPrefix).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetBasicAuth(cfg.Token, cfg.Token)
	}

	return &registryClient{http: client}
}

func (c *registryClient) GetLatestVersions(ctx context.Context, name string, stages []domain.Stage) ([]*domain.ModelVersion, error) {
	body := latestVersionsRequest{Name: name, Stages: make([]string, len(stages))}
	for i, st := range stages {
		body.Stages[i] = st.String()
	}

	var out latestVersionsResponse
	if err := c.do(ctx, "get_latest_versions", http.MethodPost, "/registered-models/get-latest-versions", body, nil, &out); err != nil {
		return nil, err
	}

	versions := make([]*domain.ModelVersion, 0, len(out.ModelVersions))
	for _, mv := range out.ModelVersions {
		versions = append(versions, mv.toDomain())
	}
	return versions, nil
}

func (c *registryClient) CreateRegisteredModel(ctx context.Context, name string) error {
	return c.do(ctx, "create_registered_model", http.MethodPost, "/registered-models/create",
		createRegisteredModelRequest{Name: name}, nil, nil)
}

func (c *registryClient) CreateModelVersion(ctx context.Context, name, source, runID string) (*domain.ModelVersion, error) {
	var out modelVersionResponse
	body := createModelVersionRequest{Name: name, Source: source, RunID: runID}
	if err := c.do(ctx, "create_model_version", http.MethodPost, "/model-versions/create", body, nil, &out); err != nil {
		return nil, err
	}
	return out.ModelVersion.toDomain(), nil
}

func (c *registryClient) GetModelVersion(ctx context.Context, name string, version int) (*domain.ModelVersion, error) {
	var out modelVersionResponse
	query := map[string]string{"name": name, "version": strconv.Itoa(version)}
	if err := c.do(ctx, "get_model_version", http.MethodGet, "/model-versions/get", nil, query, &out); err != nil {
		return nil, err
	}
	return out.ModelVersion.toDomain(), nil
}

func (c *registryClient) TransitionStage(ctx context.Context, name string, version int, stage domain.Stage, archiveExisting bool) (*domain.ModelVersion, error) {
	var out modelVersionResponse
	body := transitionStageRequest{
		Name:                    name,
		Version:                 strconv.Itoa(version),
		Stage:                   stage.String(),
		ArchiveExistingVersions: archiveExisting,
	}
	if err := c.do(ctx, "transition_stage", http.MethodPost, "/model-versions/transition-stage", body, nil, &out); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"model":   name,
		"version": version,
		"stage":   stage,
	}).Debug("model version stage transitioned")
	return out.ModelVersion.toDomain(), nil
}

func (c *registryClient) GetDownloadURI(ctx context.Context, name string, version int) (string, error) {
	var out downloadURIResponse
	query := map[string]string{"name": name, "version": strconv.Itoa(version)}
	if err := c.do(ctx, "get_download_uri", http.MethodGet, "/model-versions/get-download-uri", nil, query, &out); err != nil {
		return "", err
	}
	return out.ArtifactURI, nil
}

// do sends one request and maps failures onto the domain registry errors.
func (c *registryClient) do(ctx context.Context, op, method, path string, body interface{}, query map[string]string, out interface{}) error {
	var apiErr apiError
	req := c.http.R().
		SetContext(ctx).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if query != nil {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err == nil && resp.IsError() {
		err = responseError(op, resp.StatusCode(), &apiErr, resp.String())
	} else if err != nil {
		err = fmt.Errorf("%w: %s: %v", domain.ErrRegistry, op, err)
	}
	telemetry.ObserveRegistryRequest(op, time.Since(start).Seconds(), err)

	if err != nil {
		log.WithFields(log.Fields{
			"operation": op,
			"path":      path,
		}).WithError(err).Debug("registry request failed")
	}
	return err
}

func responseError(op string, status int, apiErr *apiError, raw string) error {
	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(raw)
	}

	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = domain.ErrUnauthorized
	case apiErr.ErrorCode == codeResourceAlreadyExists:
		kind = domain.ErrModelAlreadyExists
	case apiErr.ErrorCode == codeResourceDoesNotExist || status == http.StatusNotFound:
		kind = domain.ErrModelNotFound
	default:
		kind = domain.ErrRegistry
	}

	return &RequestError{Op: op, Status: status, Code: apiErr.ErrorCode, Message: msg, kind: kind}
}

// RequestError is a non-2xx answer from the tracking server.
type RequestError struct {
	Op      string
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *RequestError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%d %s): %s", e.kind, e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%d): %s", e.kind, e.Op, e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.kind
}
