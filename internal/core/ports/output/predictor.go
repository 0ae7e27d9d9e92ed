package ports

import "context"

// Predictor scores feature rows with a served model.
type Predictor interface {
	Ping(ctx context.Context) error
	Predict(ctx context.Context, columns []string, rows [][]float64) ([]float64, error)
}
