package neuro_core

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TrainHopfield builds the Hebbian weight matrix for a batch of bipolar
// patterns: W accumulates the outer product of every pattern with itself,
// is divided by the pattern length, has its diagonal zeroed and is finally
// scaled by the normalization factor. The result is symmetric with a zero
// diagonal and is read-only for the recall side.
func TrainHopfield(patterns [][]float64, normalizationFactor float64) (*mat.Dense, error) {
	if len(patterns) == 0 || len(patterns[0]) == 0 {
		return nil, fmt.Errorf("%w: training needs at least one non-empty pattern", ErrLengthMismatch)
	}
	size := len(patterns[0])
	w := mat.NewDense(size, size, nil)
	outer := mat.NewDense(size, size, nil)
	for pi, p := range patterns {
		if len(p) != size {
			return nil, fmt.Errorf("%w: pattern %d has length %d, batch length is %d", ErrLengthMismatch, pi, len(p), size)
		}
		v := mat.NewVecDense(size, p)
		outer.Outer(1, v, v)
		w.Add(w, outer)
	}
	w.Scale(1/float64(size), w)
	for i := 0; i < size; i++ {
		w.Set(i, i, 0)
	}
	w.Scale(normalizationFactor, w)
	return w, nil
}

// RecallAsync runs the given number of full asynchronous sweeps over a copy
// of the query pattern. Within one sweep neurons update strictly in index
// order and in place, so neuron i sees the values neurons 0..i-1 took
// earlier in the same sweep. That ordering affects convergence and is part
// of the contract; do not double-buffer or parallelize a sweep.
func RecallAsync(pattern []float64, w *mat.Dense, steps int) ([]float64, error) {
	rows, cols := w.Dims()
	if rows != cols || len(pattern) != rows {
		return nil, fmt.Errorf("%w: query length %d does not match weight matrix dimension %dx%d", ErrLengthMismatch, len(pattern), rows, cols)
	}
	x := make([]float64, len(pattern))
	copy(x, pattern)
	// xv aliases x, so in-sweep updates feed the later dot products.
	xv := mat.NewVecDense(len(x), x)
	for s := 0; s < steps; s++ {
		for i := 0; i < rows; i++ {
			field := mat.Dot(w.RowView(i), xv)
			x[i] = SignKeep(field, x[i])
		}
	}
	return x, nil
}

// SignKeep is the bipolar sign used by the asynchronous update. A zero
// local field keeps the neuron's previous state: 0 is not a valid bipolar
// value, and writing it into the state vector would corrupt every later
// dot product in the sweep.
func SignKeep(field, previous float64) float64 {
	if field > 0 {
		return 1
	}
	if field < 0 {
		return -1
	}
	return previous
}

// FlipBits returns a copy of the pattern with count distinct entries
// sign-flipped, plus the flipped indices. This is the only place randomness
// enters the recall pipeline; train and recall themselves are deterministic.
func FlipBits(pattern []float64, count int, localRand *rand.Rand) ([]float64, []int) {
	noisy := make([]float64, len(pattern))
	copy(noisy, pattern)
	if count > len(pattern) {
		count = len(pattern)
	}
	if count <= 0 {
		return noisy, nil
	}
	flipped := localRand.Perm(len(pattern))[:count]
	for _, i := range flipped {
		noisy[i] = -noisy[i]
	}
	return noisy, flipped
}

// HammingDistance counts positions where two equal-length vectors disagree.
func HammingDistance(a, b []float64) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: vectors have lengths %d and %d", ErrLengthMismatch, len(a), len(b))
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}
