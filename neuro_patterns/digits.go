package neuro_patterns

// The two reference digit sets, each a batch of 5x5 bipolar bitmaps. The
// 5-9 set carries small asymmetries added to keep the patterns further
// apart; Hebbian capacity on 25 neurons is tight with five patterns per
// batch, so the exact bitmaps matter for recall behavior.

const digitGridRows = 5
const digitGridCols = 5

var digits04 = [][]float64{
	{-1, 1, 1, 1, -1,
		1, -1, -1, -1, 1,
		1, -1, -1, -1, 1,
		1, -1, -1, -1, 1,
		-1, 1, 1, 1, -1}, // 0

	{-1, -1, 1, -1, -1,
		-1, 1, 1, -1, -1,
		-1, -1, 1, -1, -1,
		-1, -1, 1, -1, -1,
		-1, 1, 1, 1, -1}, // 1

	{1, 1, 1, 1, 1,
		-1, -1, -1, -1, 1,
		-1, 1, 1, 1, -1,
		1, -1, -1, -1, -1,
		1, 1, 1, 1, 1}, // 2

	{-1, 1, 1, 1, -1,
		-1, -1, -1, -1, 1,
		-1, 1, 1, 1, -1,
		-1, -1, -1, -1, 1,
		-1, 1, 1, 1, -1}, // 3

	{1, -1, -1, 1, -1,
		1, -1, -1, 1, -1,
		1, 1, 1, 1, 1,
		-1, -1, -1, 1, -1,
		-1, -1, -1, 1, -1}, // 4
}

var digits59 = [][]float64{
	{-1, 1, 1, 1, 1,
		1, -1, -1, -1, -1,
		-1, 1, 1, 1, -1,
		-1, -1, -1, -1, 1,
		1, 1, 1, 1, -1}, // 5

	{-1, 1, -1, -1, -1,
		-1, 1, -1, -1, -1,
		-1, 1, 1, 1, -1,
		-1, 1, -1, -1, 1,
		-1, 1, 1, 1, -1}, // 6

	{1, 1, 1, 1, 1,
		-1, -1, -1, 1, -1,
		-1, -1, 1, -1, -1,
		-1, 1, -1, -1, -1,
		1, -1, -1, -1, -1}, // 7

	{1, 1, 1, -1, -1,
		1, -1, 1, -1, -1,
		1, 1, 1, -1, -1,
		1, -1, 1, -1, -1,
		1, 1, 1, -1, -1}, // 8

	{-1, -1, 1, 1, 1,
		-1, 1, -1, -1, 1,
		-1, -1, 1, 1, 1,
		-1, -1, -1, -1, 1,
		-1, -1, -1, -1, 1}, // 9
}

type DigitBatch struct {
	name     string
	labels   []string
	patterns [][]float64
}

func Digits0to4() DigitBatch {
	return DigitBatch{
		name:     "DIGITS_0_4",
		labels:   []string{"0", "1", "2", "3", "4"},
		patterns: digits04,
	}
}

func Digits5to9() DigitBatch {
	return DigitBatch{
		name:     "DIGITS_5_9",
		labels:   []string{"5", "6", "7", "8", "9"},
		patterns: digits59,
	}
}

func (b DigitBatch) BatchName() string { return b.name }

func (b DigitBatch) Labels() []string {
	labels := make([]string, len(b.labels))
	copy(labels, b.labels)
	return labels
}

// Patterns returns fresh copies; the stored bitmaps are never handed out
// mutable.
func (b DigitBatch) Patterns() [][]float64 {
	patterns := make([][]float64, len(b.patterns))
	for i, p := range b.patterns {
		patterns[i] = make([]float64, len(p))
		copy(patterns[i], p)
	}
	return patterns
}

func (b DigitBatch) GridRows() int { return digitGridRows }
func (b DigitBatch) GridCols() int { return digitGridCols }
