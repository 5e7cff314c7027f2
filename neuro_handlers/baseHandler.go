package neuro_handlers

type TiePolicyHandler interface {
	// ResolveSelection receives the indices attaining the maximum stimulus
	// and returns the surviving winners. An empty result means no selection.
	ResolveSelection(maxIndices []int) []int
}
