package neuro_patterns

// PatternSource supplies a named batch of fixed-length bipolar patterns.
// All patterns in one batch share the same length (GridRows*GridCols) and
// every entry is -1 or +1.
type PatternSource interface {
	BatchName() string
	Labels() []string
	Patterns() [][]float64
	GridRows() int
	GridCols() int
}

// IsBipolar reports whether every entry of the vector is -1 or +1.
func IsBipolar(pattern []float64) bool {
	for _, v := range pattern {
		if v != 1 && v != -1 {
			return false
		}
	}
	return true
}

// Reshape views a flat pattern as a rows x cols grid for rendering.
func Reshape(pattern []float64, rows, cols int) [][]float64 {
	grid := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]float64, cols)
		copy(grid[r], pattern[r*cols:(r+1)*cols])
	}
	return grid
}
