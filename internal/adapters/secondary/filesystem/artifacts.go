package filesystem

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

type artifactStore struct{}

// NewArtifactStore reads training artifacts from the local filesystem.
func NewArtifactStore() ports.ArtifactStore {
	return artifactStore{}
}

func (artifactStore) LoadModelInfo(path string) (*domain.ModelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read model info: %v", domain.ErrArtifact, err)
	}

	var info domain.ModelInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: parse model info %s: %v", domain.ErrArtifact, path, err)
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &info, nil
}

func (artifactStore) LoadVectorizer(path string) (ports.Vectorizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vectorizer: %v", domain.ErrArtifact, err)
	}
	defer f.Close()

	v, err := ReadCountVectorizer(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifact, path, err)
	}
	return v, nil
}

// LoadDataset reads a CSV with a header row. The last column is the label;
// every other column is a numeric feature.
func (artifactStore) LoadDataset(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open dataset: %v", domain.ErrArtifact, err)
	}
	defer f.Close()

	ds, err := readDataset(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifact, path, err)
	}
	return ds, nil
}

func readDataset(r io.Reader) (*domain.Dataset, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("need at least one feature and a label column, got %d columns", len(header))
	}

	features := len(header) - 1
	ds := &domain.Dataset{Columns: append([]string(nil), header[:features]...)}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, features)
		for i := 0; i < features; i++ {
			if row[i], err = strconv.ParseFloat(record[i], 64); err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
		}
		label, err := strconv.ParseFloat(record[features], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d label: %w", line, err)
		}

		ds.Rows = append(ds.Rows, row)
		ds.Labels = append(ds.Labels, label)
	}

	if ds.Len() == 0 {
		return nil, errors.New("dataset has no rows")
	}
	return ds, nil
}
