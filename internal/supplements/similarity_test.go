package supplements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"vitamin d3", "creatine monohydrate", "x"} {
		assert.Equal(t, 1.0, Similarity(s, s))
	}
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("magnesium", ""))
	assert.Equal(t, 0.0, Similarity("", "magnesium"))
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"vitamin d3 5000 iu", "vitamin d3 5000iu"},
		{"fish oil", "krill oil"},
		{"zinc", "zinc picolinate"},
	}
	for _, pair := range pairs {
		assert.Equal(t, Similarity(pair[0], pair[1]), Similarity(pair[1], pair[0]))
	}
}

func TestSimilarityRange(t *testing.T) {
	score := Similarity("vitamin d3 5000 iu", "vitamin d3 5000iu")
	assert.Greater(t, score, 0.8)
	assert.LessOrEqual(t, score, 1.0)

	score = Similarity("ashwagandha", "omega 3")
	assert.GreaterOrEqual(t, score, 0.0)
	assert.Less(t, score, 0.5)
}

func TestSimilaritySingleEdit(t *testing.T) {
	// One substitution over four runes.
	assert.InDelta(t, 0.75, Similarity("zinc", "zins"), 1e-9)
}
