package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDFSimilarity(t *testing.T) {
	sim := NewTFIDFSimilarity()
	assert.True(t, sim.Available())

	t.Run("identical documents", func(t *testing.T) {
		score, err := sim.Similarity("golang kubernetes postgres", "golang kubernetes postgres")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("disjoint documents", func(t *testing.T) {
		score, err := sim.Similarity("golang kubernetes", "painting sculpture")
		require.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("partial overlap lands in between", func(t *testing.T) {
		score, err := sim.Similarity("golang kubernetes docker", "golang watercolor pottery")
		require.NoError(t, err)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)
	})

	t.Run("empty document errors", func(t *testing.T) {
		_, err := sim.Similarity("", "golang")
		assert.Error(t, err)
	})

	t.Run("stopword only document errors", func(t *testing.T) {
		_, err := sim.Similarity("the and of", "golang")
		assert.Error(t, err)
	})

	t.Run("tokenization is case and punctuation insensitive", func(t *testing.T) {
		score, err := sim.Similarity("GoLang, Kubernetes!", "golang kubernetes")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9)
	})
}
