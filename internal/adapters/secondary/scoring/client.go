package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"model-registry-ops/internal/config"
	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

type scoringClient struct {
	http *resty.Client
}

// NewPredictor creates a client for an MLflow scoring server
// (`mlflow models serve`) hosting the model under evaluation.
func NewPredictor(cfg *config.ScoringConfig) ports.Predictor {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &scoringClient{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.URL, "/")).
			SetTimeout(timeout),
	}
}

type dataframeSplit struct {
	Columns []string    `json:"columns"`
	Data    [][]float64 `json:"data"`
}

type invocationRequest struct {
	DataframeSplit dataframeSplit `json:"dataframe_split"`
}

type invocationResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (c *scoringClient) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/ping")
	if err != nil {
		return fmt.Errorf("%w: ping: %v", domain.ErrPredictor, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: ping: status %d", domain.ErrPredictor, resp.StatusCode())
	}
	return nil
}

func (c *scoringClient) Predict(ctx context.Context, columns []string, rows [][]float64) ([]float64, error) {
	var out invocationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(invocationRequest{DataframeSplit: dataframeSplit{Columns: columns, Data: rows}}).
		SetResult(&out).
		Post("/invocations")
	if err != nil {
		return nil, fmt.Errorf("%w: invocations: %v", domain.ErrPredictor, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: invocations: status %d: %s", domain.ErrPredictor, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return out.Predictions, nil
}
