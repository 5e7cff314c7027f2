package neuro_patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitBatchesAreValid(t *testing.T) {
	for _, source := range []PatternSource{Digits0to4(), Digits5to9()} {
		patterns := source.Patterns()
		labels := source.Labels()
		require.Len(t, patterns, 5, source.BatchName())
		require.Len(t, labels, 5, source.BatchName())
		assert.Equal(t, 5, source.GridRows())
		assert.Equal(t, 5, source.GridCols())
		for i, p := range patterns {
			assert.Len(t, p, 25, "%s pattern %s", source.BatchName(), labels[i])
			assert.True(t, IsBipolar(p), "%s pattern %s must be bipolar", source.BatchName(), labels[i])
		}
	}
}

func TestDigitBatchLabels(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, Digits0to4().Labels())
	assert.Equal(t, []string{"5", "6", "7", "8", "9"}, Digits5to9().Labels())
	assert.Equal(t, "DIGITS_0_4", Digits0to4().BatchName())
	assert.Equal(t, "DIGITS_5_9", Digits5to9().BatchName())
}

func TestPatternsReturnsCopies(t *testing.T) {
	source := Digits0to4()
	first := source.Patterns()
	first[0][0] = -first[0][0]
	second := source.Patterns()
	assert.NotEqual(t, first[0][0], second[0][0], "mutating a returned pattern must not touch the source")
}

func TestIsBipolar(t *testing.T) {
	assert.True(t, IsBipolar([]float64{1, -1, 1}))
	assert.False(t, IsBipolar([]float64{1, 0, -1}))
	assert.True(t, IsBipolar(nil))
}

func TestReshape(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	grid := Reshape(flat, 2, 3)
	require.Len(t, grid, 2)
	assert.Equal(t, []float64{1, 2, 3}, grid[0])
	assert.Equal(t, []float64{4, 5, 6}, grid[1])

	// Rows are copies, not views.
	grid[0][0] = 99
	assert.Equal(t, 1.0, flat[0])
}
