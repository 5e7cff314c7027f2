package neuro_controllers

// RecoveryCountData holds per-pattern recall outcomes aggregated from the
// recall sessions table.
type RecoveryCountData struct {
	Label           string  `json:"label"`
	RecoveredCount  int     `json:"recovered_count"`
	TotalCount      int     `json:"total_count"`
	AvgHammingError float64 `json:"avg_hamming_error"`
}

// SelectionCountData holds how often each selection kind occurred per
// strike scenario.
type SelectionCountData struct {
	Scenario      string `json:"scenario"`
	SelectionKind string `json:"selection_kind"`
	TotalCount    int    `json:"total_count"`
}
