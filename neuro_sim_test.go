package neuro_sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuro_sim/neuro_core"
	"neuro_sim/neuro_patterns"
)

func TestSettingsFactoryDefaults(t *testing.T) {
	settings, err := SettingsFactory("allow_ties", 0.75)
	require.NoError(t, err)

	assert.Equal(t, "ALLOW_TIES", settings.TiePolicy)
	assert.Equal(t, 0.75, settings.Threshold)
	assert.Equal(t, 10.0, settings.Tau)
	assert.Equal(t, -65.0, settings.VRest)
	assert.Equal(t, -70.0, settings.V0)
	assert.Equal(t, 0.1, settings.StepSize)
	assert.Equal(t, 0.0, settings.TStart)
	assert.Equal(t, 100.0, settings.TEnd)
	assert.Equal(t, 10.0, settings.StimulusGain)
	assert.NotNil(t, settings.tiePolicyHandler)
}

func TestSettingsFactoryRejectsUnknownPolicy(t *testing.T) {
	_, err := SettingsFactory("MAJORITY_VOTE", 0.75)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tie policy is invalid")
}

func TestRecallSettingsFactory(t *testing.T) {
	settings, err := RecallSettingsFactory(2)
	require.NoError(t, err)
	assert.Equal(t, 0.05, settings.NormalizationFactor)
	assert.Equal(t, 50, settings.RecallSteps)
	assert.Equal(t, 2, settings.NoiseFlipCount)

	_, err = RecallSettingsFactory(-1)
	require.Error(t, err)
}

func TestStrikeSessionSingleWinner(t *testing.T) {
	settings, err := SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	stimuli := []float64{0.1, 0.5, 0.8, 0.6, 0.2, 0.7, 0.4, 0.3, 0.9, 0.2}
	data, err := StrikeSession(settings, stimuli, nil)
	require.NoError(t, err)

	assert.Equal(t, SelectionSingle, data.Selection.Kind)
	assert.Equal(t, []int{8}, data.Selection.Indices)
	assert.True(t, data.HasDirection)
	assert.Equal(t, 3.5, data.Direction)
	assert.Equal(t, "FINISHED", data.Status)
	assert.Len(t, data.Times, 1001)
	assert.Len(t, data.Membrane, 1001)
	assert.Len(t, data.GateMembrane, 1001)
	assert.Equal(t, 0.9, data.GateOutput, "0.9 crosses the 0.75 threshold")
}

func TestStrikeSessionTiedWinners(t *testing.T) {
	settings, err := SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	stimuli := []float64{0.1, 0.5, 0.8, 0.9, 0.2, 0.7, 0.4, 0.3, 0.9, 0.2}
	data, err := StrikeSession(settings, stimuli, nil)
	require.NoError(t, err)

	assert.Equal(t, SelectionTied, data.Selection.Kind)
	assert.Equal(t, []int{3, 8}, data.Selection.Indices)
	assert.True(t, data.HasDirection)
	assert.Equal(t, 1.0, data.Direction)
}

func TestStrikeSessionRejectTies(t *testing.T) {
	settings, err := SettingsFactory("REJECT_TIES", 0.75)
	require.NoError(t, err)

	stimuli := []float64{0.1, 0.5, 0.7, 0.4, 0.9, 0.8, 0.2, 0.9, 0.3, 0.5}
	data, err := StrikeSession(settings, stimuli, nil)
	require.NoError(t, err)

	assert.Equal(t, SelectionNone, data.Selection.Kind)
	assert.Empty(t, data.Selection.Indices)
	assert.False(t, data.HasDirection)
	assert.Equal(t, "NO_WINNER", data.Status)
	// The membrane trajectory still runs; only motor output is skipped.
	assert.Len(t, data.Membrane, 1001)
}

func TestStrikeSessionSubThresholdHold(t *testing.T) {
	settings, err := SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	stimuli := []float64{0.1, 0.5, 0.73, 0.4, 0.6, 0.44, 0.2, 0.62, 0.3, 0.5}
	data, err := StrikeSession(settings, stimuli, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.7, data.GateOutput, "max stimulus 0.73 must not erase the previous output")
}

func TestStrikeSessionEventOrder(t *testing.T) {
	settings, err := SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	var messages []SessionStateMessage
	stimuli := []float64{0.1, 0.5, 0.8, 0.6, 0.2, 0.7, 0.4, 0.3, 0.9, 0.2}
	_, err = StrikeSession(settings, stimuli, func(msg SessionStateMessage) {
		messages = append(messages, msg)
	})
	require.NoError(t, err)

	require.NotEmpty(t, messages)
	assert.Equal(t, "selection", messages[0].CommandType)
	assert.Equal(t, "finished", messages[len(messages)-1].CommandType)
	gateCount := 0
	for _, msg := range messages[1 : len(messages)-1] {
		assert.Equal(t, "gate", msg.CommandType)
		gateCount++
	}
	assert.Equal(t, 1000, gateCount, "one gate event per integration step")
}

func TestStrikeSessionEmptyStimuli(t *testing.T) {
	settings, err := SettingsFactory("ALLOW_TIES", 0.75)
	require.NoError(t, err)

	_, err = StrikeSession(settings, nil, nil)
	require.ErrorIs(t, err, neuro_core.ErrEmptyStimulusSet)
}

func TestRecallSessionRecoversSingleFlip(t *testing.T) {
	source := neuro_patterns.Digits5to9()
	settings, err := RecallSettingsFactory(1)
	require.NoError(t, err)

	w, err := neuro_core.TrainHopfield(source.Patterns(), settings.NormalizationFactor)
	require.NoError(t, err)

	// Digit 8 recovers from a single flip at any position.
	pattern := source.Patterns()[3]
	data, err := RecallSession(settings, w, "8", pattern, 42, rand.New(rand.NewSource(42)), nil)
	require.NoError(t, err)

	assert.Equal(t, RecallRecovered, data.Status)
	assert.Equal(t, 0, data.HammingError)
	assert.Equal(t, pattern, data.Recovered)
	require.Len(t, data.FlippedIndices, 1)
	flip := data.FlippedIndices[0]
	assert.Equal(t, -pattern[flip], data.Noisy[flip])
}

func TestRecallSessionDeterministicGivenSeed(t *testing.T) {
	source := neuro_patterns.Digits0to4()
	settings, err := RecallSettingsFactory(2)
	require.NoError(t, err)

	w, err := neuro_core.TrainHopfield(source.Patterns(), settings.NormalizationFactor)
	require.NoError(t, err)

	pattern := source.Patterns()[3]
	first, err := RecallSession(settings, w, "3", pattern, 7, rand.New(rand.NewSource(7)), nil)
	require.NoError(t, err)
	second, err := RecallSession(settings, w, "3", pattern, 7, rand.New(rand.NewSource(7)), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecallSessionRejectsWrongLength(t *testing.T) {
	settings, err := RecallSettingsFactory(1)
	require.NoError(t, err)

	w, err := neuro_core.TrainHopfield([][]float64{{1, -1, 1}}, settings.NormalizationFactor)
	require.NoError(t, err)

	_, err = RecallSession(settings, w, "bad", []float64{1, -1}, 1, rand.New(rand.NewSource(1)), nil)
	require.ErrorIs(t, err, neuro_core.ErrLengthMismatch)
}

func TestLoadSimulationSettings(t *testing.T) {
	settings, err := LoadSimulationSettings("simulation_settings.json")
	require.NoError(t, err)

	assert.Equal(t, 3, settings.MaxSessionCount)
	assert.Equal(t, 4, settings.MaxWorkerCount)
	require.Len(t, settings.StrikeScenarios, 4)
	require.Len(t, settings.RecallBatches, 2)
	assert.Equal(t, "single_winner", settings.StrikeScenarios[0].Name)
	assert.Equal(t, 2, settings.RecallBatches[0].NoiseFlipCount)

	_, err = LoadSimulationSettings("does_not_exist.json")
	require.Error(t, err)
}
