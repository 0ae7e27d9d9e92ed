package filesystem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountVectorizer_Transform(t *testing.T) {
	v, err := NewCountVectorizer(map[string]int{"good": 0, "bad": 1, "movie": 2, "how": 3}, true)
	require.NoError(t, err)

	rows := v.Transform([]string{"Good GOOD movie, a bad one!", "hi how are you", ""})
	assert.Equal(t, [][]float64{
		{2, 1, 1, 0},
		{0, 0, 0, 1},
		{0, 0, 0, 0},
	}, rows)
	assert.Equal(t, []string{"good", "bad", "movie", "how"}, v.FeatureNames())
}

func TestCountVectorizer_SkipsSingleCharTokens(t *testing.T) {
	v, err := NewCountVectorizer(map[string]int{"a": 0, "ab": 1}, true)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0, 1}}, v.Transform([]string{"a ab"}))
}

func TestCountVectorizer_CaseSensitive(t *testing.T) {
	v, err := ReadCountVectorizer(strings.NewReader(`{"vocabulary": {"Good": 0, "good": 1}, "lowercase": false}`))
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 1}}, v.Transform([]string{"Good good"}))
}

func TestNewCountVectorizer_InvalidVocabulary(t *testing.T) {
	_, err := NewCountVectorizer(nil, true)
	assert.Error(t, err)

	_, err = NewCountVectorizer(map[string]int{"good": 0, "bad": 0}, true)
	assert.Error(t, err)

	_, err = NewCountVectorizer(map[string]int{"good": 0, "bad": 2}, true)
	assert.Error(t, err)
}

func TestCountVectorizer_UnicodeWords(t *testing.T) {
	v, err := NewCountVectorizer(map[string]int{"naïve": 0, "café": 1, "na": 2, "ve": 3, "caf": 4}, true)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 1, 0, 0, 0}}, v.Transform([]string{"Naïve café"}))
}
