package filesystem

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more Unicode word characters, the
// same tokens scikit-learn's default (?u)\b\w\w+\b yields. Go's \w and \b
// are ASCII only.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// CountVectorizer is a bag-of-words vectorizer with a fixed vocabulary,
// exported by the training pipeline as
// {"vocabulary": {"term": index, ...}, "lowercase": true}.
type CountVectorizer struct {
	vocabulary map[string]int
	features   []string
	lowercase  bool
}

type countVectorizerFile struct {
	Vocabulary map[string]int `json:"vocabulary"`
	Lowercase  *bool          `json:"lowercase"`
}

func ReadCountVectorizer(r io.Reader) (*CountVectorizer, error) {
	var file countVectorizerFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode vectorizer: %w", err)
	}
	lowercase := true
	if file.Lowercase != nil {
		lowercase = *file.Lowercase
	}
	return NewCountVectorizer(file.Vocabulary, lowercase)
}

// NewCountVectorizer checks that vocabulary indices are exactly 0..n-1.
func NewCountVectorizer(vocabulary map[string]int, lowercase bool) (*CountVectorizer, error) {
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}

	features := make([]string, len(vocabulary))
	for term, idx := range vocabulary {
		if idx < 0 || idx >= len(features) {
			return nil, fmt.Errorf("term %q has index %d outside 0..%d", term, idx, len(features)-1)
		}
		if features[idx] != "" {
			return nil, fmt.Errorf("terms %q and %q share index %d", features[idx], term, idx)
		}
		features[idx] = term
	}

	return &CountVectorizer{vocabulary: vocabulary, features: features, lowercase: lowercase}, nil
}

func (v *CountVectorizer) Transform(texts []string) [][]float64 {
	rows := make([][]float64, len(texts))
	for i, text := range texts {
		row := make([]float64, len(v.features))
		if v.lowercase {
			text = strings.ToLower(text)
		}
		for _, tok := range tokenPattern.FindAllString(text, -1) {
			if idx, ok := v.vocabulary[tok]; ok {
				row[idx]++
			}
		}
		rows[i] = row
	}
	return rows
}

func (v *CountVectorizer) FeatureNames() []string {
	return append([]string(nil), v.features...)
}

func (v *CountVectorizer) FeatureCount() int {
	return len(v.features)
}
