package neuro_handlers

type RejectTiesPolicy struct{}

// A tie means no winner at all: two equally intense stimuli cancel the
// selection instead of splitting it.
func (p RejectTiesPolicy) ResolveSelection(maxIndices []int) []int {
	if len(maxIndices) > 1 {
		return nil
	}
	return maxIndices
}
