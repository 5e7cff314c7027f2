package neuro_core

// EncodeDirection maps winner indices in an n-position visual field to a
// signed strike direction. A single index i encodes as i-(n-1)/2, so index 0
// is the far left (-(n-1)/2), the middle is 0 and index n-1 is the far right.
// A tied set encodes as the mean of the per-index directions. indices must
// be non-empty: "no selection" is resolved by the session driver, which
// skips motor output entirely instead of calling this.
func EncodeDirection(indices []int, n int) float64 {
	center := float64(n-1) / 2
	sum := 0.0
	for _, i := range indices {
		sum += float64(i) - center
	}
	return sum / float64(len(indices))
}
