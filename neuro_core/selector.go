package neuro_core

import "fmt"

// MaxIndices returns every index of the stimulus vector attaining the
// maximum intensity, in ascending order. Intensities tie only when their
// stored values are exactly equal; no epsilon tolerance is applied, so two
// readings that differ in the last bit are not a tie. Real sensor data
// would rarely tie exactly, which is what the reject-ties policy relies on.
func MaxIndices(stimuli []float64) ([]int, error) {
	if len(stimuli) == 0 {
		return nil, fmt.Errorf("%w: selection needs at least one stimulus", ErrEmptyStimulusSet)
	}
	maxVal := stimuli[0]
	for _, s := range stimuli[1:] {
		if s > maxVal {
			maxVal = s
		}
	}
	var winners []int
	for i, s := range stimuli {
		if s == maxVal {
			winners = append(winners, i)
		}
	}
	return winners, nil
}

// MaxStimulus returns the maximum intensity in the vector.
func MaxStimulus(stimuli []float64) (float64, error) {
	if len(stimuli) == 0 {
		return 0, fmt.Errorf("%w: selection needs at least one stimulus", ErrEmptyStimulusSet)
	}
	maxVal := stimuli[0]
	for _, s := range stimuli[1:] {
		if s > maxVal {
			maxVal = s
		}
	}
	return maxVal, nil
}
