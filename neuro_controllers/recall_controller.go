package neuro_controllers

import (
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"

	"neuro_sim"
	"neuro_sim/neuro_core"
	"neuro_sim/neuro_patterns"
)

type RecallController struct {
}

// SourceFactory resolves a configured batch name to its pattern source.
func (c RecallController) SourceFactory(batchName string) (neuro_patterns.PatternSource, error) {
	switch parsedName := strings.ToUpper(batchName); parsedName {
	case "DIGITS_0_4":
		return neuro_patterns.Digits0to4(), nil
	case "DIGITS_5_9":
		return neuro_patterns.Digits5to9(), nil
	}
	return nil, fmt.Errorf("pattern batch is invalid: %s", batchName)
}

// TrainBatch validates the source patterns and trains the batch weight
// matrix once; recall sessions share it read-only.
func (c RecallController) TrainBatch(source neuro_patterns.PatternSource, settings neuro_sim.RecallSettings) (*mat.Dense, error) {
	patterns := source.Patterns()
	for i, p := range patterns {
		if !neuro_patterns.IsBipolar(p) {
			return nil, fmt.Errorf("pattern %q (index %d) in batch %s is not bipolar", source.Labels()[i], i, source.BatchName())
		}
	}
	return neuro_core.TrainHopfield(patterns, settings.NormalizationFactor)
}

// StartRecallSession runs one noisy recall and forwards the finished event
// to the session state channel without blocking. A recall batch emits one
// finished event per session, so the batch driver gates the stream by
// passing a nil channel while no listener is attached.
func (c RecallController) StartRecallSession(settings neuro_sim.RecallSettings, w *mat.Dense, label string, pattern []float64, seed int64, localRand *rand.Rand, stateChannel chan neuro_sim.SessionStateMessage) (neuro_sim.RecallData, error) {
	notify := func(msg neuro_sim.SessionStateMessage) {
		trySend(stateChannel, msg)
	}
	return neuro_sim.RecallSession(settings, w, label, pattern, seed, localRand, notify)
}
