package neuro_sim

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"neuro_sim/neuro_core"
)

// StrikeData is the full outcome of one strike session: the selection, the
// motor direction (when a winner exists), the one-shot hysteresis output and
// both membrane trajectories.
type StrikeData struct {
	Stimuli      []float64      `json:"stimuli"`
	Selection    SelectionEvent `json:"selection"`
	Direction    float64        `json:"direction"`
	HasDirection bool           `json:"has_direction"`
	GateOutput   float64        `json:"gate_output"`
	Times        []float64      `json:"-"`
	Membrane     []float64      `json:"-"`
	GateTimes    []float64      `json:"-"`
	GateMembrane []float64      `json:"-"`
	HeldSteps    int            `json:"held_steps"`
	Status       string         `json:"status"`
}

// StrikeSession runs one strike scenario: winner selection under the
// configured tie policy, motor encoding, the one-shot hysteresis check on
// the maximum stimulus, the plain membrane trajectory driven by the maximum
// stimulus, and the streaming hysteresis trajectory driven by the
// time-indexed stimulus sequence. notify, when non-nil, receives the
// selection event, one gate event per integration step, and a final
// "finished" message. Deterministic: no randomness anywhere in the session.
func StrikeSession(settings ScenarioSettings, stimuli []float64, notify func(SessionStateMessage)) (StrikeData, error) {
	maxIndices, err := neuro_core.MaxIndices(stimuli)
	if err != nil {
		return StrikeData{}, err
	}
	winners := settings.tiePolicyHandler.ResolveSelection(maxIndices)

	selection := SelectionEvent{Kind: SelectionNone, Indices: winners}
	switch {
	case len(winners) == 1:
		selection.Kind = SelectionSingle
	case len(winners) > 1:
		selection.Kind = SelectionTied
	}
	emit(notify, SessionStateMessage{CommandType: "selection", SessionState: selection})

	data := StrikeData{
		Stimuli:   stimuli,
		Selection: selection,
		Status:    "FINISHED",
	}
	if len(winners) > 0 {
		data.Direction = neuro_core.EncodeDirection(winners, len(stimuli))
		data.HasDirection = true
	} else {
		data.Status = "NO_WINNER"
	}

	maxStimulus, err := neuro_core.MaxStimulus(stimuli)
	if err != nil {
		return StrikeData{}, err
	}
	data.GateOutput = neuro_core.Hold(maxStimulus, settings.PreviousOutput, settings.Threshold)

	iExt := maxStimulus * settings.StimulusGain
	data.Times, data.Membrane, err = neuro_core.Integrate(settings.membrane.Derivative, settings.V0, settings.TStart, settings.TEnd, settings.StepSize, iExt)
	if err != nil {
		return StrikeData{}, err
	}

	heldSteps := 0
	data.GateTimes, data.GateMembrane, err = neuro_core.IntegrateWithHysteresis(
		settings.membrane.Derivative, settings.V0, settings.TStart, settings.TEnd, settings.StepSize,
		stimuli, settings.StimulusGain, settings.Threshold, settings.V0,
		func(d neuro_core.GateDecision) {
			if !d.Driven {
				heldSteps++
			}
			emit(notify, SessionStateMessage{CommandType: "gate", SessionState: d})
		})
	if err != nil {
		return StrikeData{}, err
	}
	data.HeldSteps = heldSteps

	emit(notify, SessionStateMessage{CommandType: "finished", SessionState: data})
	return data, nil
}

// Recall session statuses.
const (
	RecallRecovered = "RECOVERED"
	RecallDegraded  = "DEGRADED"
)

// RecallData is the outcome of one noisy recall against a trained weight
// matrix.
type RecallData struct {
	Seed           int64     `json:"seed"`
	Label          string    `json:"label"`
	Pattern        []float64 `json:"pattern"`
	Noisy          []float64 `json:"noisy"`
	Recovered      []float64 `json:"recovered"`
	FlippedIndices []int     `json:"flipped_indices"`
	HammingError   int       `json:"hamming_error"`
	Status         string    `json:"status"`
}

// RecallSession corrupts the pattern with the configured number of bit
// flips, relaxes the noisy copy against the trained weight matrix and
// compares the result with the original. The weight matrix is only read, so
// concurrent sessions may share it; each session owns its rand and its
// vector copies.
func RecallSession(settings RecallSettings, w *mat.Dense, label string, pattern []float64, seed int64, localRand *rand.Rand, notify func(SessionStateMessage)) (RecallData, error) {
	noisy, flipped := neuro_core.FlipBits(pattern, settings.NoiseFlipCount, localRand)

	recovered, err := neuro_core.RecallAsync(noisy, w, settings.RecallSteps)
	if err != nil {
		return RecallData{}, err
	}
	hamming, err := neuro_core.HammingDistance(pattern, recovered)
	if err != nil {
		return RecallData{}, err
	}

	data := RecallData{
		Seed:           seed,
		Label:          label,
		Pattern:        pattern,
		Noisy:          noisy,
		Recovered:      recovered,
		FlippedIndices: flipped,
		HammingError:   hamming,
		Status:         RecallRecovered,
	}
	if hamming > 0 {
		data.Status = RecallDegraded
	}

	emit(notify, SessionStateMessage{CommandType: "finished", SessionState: data})
	return data, nil
}

func emit(notify func(SessionStateMessage), msg SessionStateMessage) {
	if notify != nil {
		notify(msg)
	}
}
