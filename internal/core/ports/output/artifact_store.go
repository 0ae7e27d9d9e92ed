package ports

import (
	"model-registry-ops/internal/core/domain"
)

// Vectorizer turns raw text into the feature rows the model was trained on.
type Vectorizer interface {
	Transform(texts []string) [][]float64
	FeatureNames() []string
	FeatureCount() int
}

// ArtifactStore reads artifacts produced by the training pipeline.
type ArtifactStore interface {
	LoadModelInfo(path string) (*domain.ModelInfo, error)
	LoadVectorizer(path string) (Vectorizer, error)
	LoadDataset(path string) (*domain.Dataset, error)
}
