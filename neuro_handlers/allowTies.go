package neuro_handlers

type AllowTiesPolicy struct{}

// When ties are allowed every index sharing the maximum wins; the motor
// side averages their positions.
func (p AllowTiesPolicy) ResolveSelection(maxIndices []int) []int {
	return maxIndices
}
