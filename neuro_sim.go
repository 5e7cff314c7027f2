package neuro_sim

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"neuro_sim/neuro_core"
	"neuro_sim/neuro_handlers"
)

// Reference-scenario defaults for the strike and recall pipelines.
const (
	DefaultTau                 = 10.0
	DefaultVRest               = -65.0
	DefaultV0                  = -70.0
	DefaultStepSize            = 0.1
	DefaultTStart              = 0.0
	DefaultTEnd                = 100.0
	DefaultStimulusGain        = 10.0
	DefaultPreviousOutput      = 0.7
	DefaultNormalizationFactor = 0.05
	DefaultRecallSteps         = 50
)

// ScenarioSettings configures one strike scenario: the membrane constants,
// the integration window and the tie policy used for winner selection.
type ScenarioSettings struct {
	Tau            float64
	VRest          float64
	V0             float64
	StepSize       float64
	TStart         float64
	TEnd           float64
	Threshold      float64
	StimulusGain   float64
	PreviousOutput float64
	TiePolicy      string

	tiePolicyHandler neuro_handlers.TiePolicyHandler
	membrane         neuro_core.MembraneModel
}

// SettingsFactory resolves the tie-policy name to its handler and fills the
// reference defaults for everything else. Unknown policies are rejected.
func SettingsFactory(tiePolicy string, threshold float64) (ScenarioSettings, error) {
	var policyHandler neuro_handlers.TiePolicyHandler

	switch parsedPolicy := strings.ToUpper(tiePolicy); parsedPolicy {
	case "ALLOW_TIES":
		policyHandler = neuro_handlers.AllowTiesPolicy{}
	case "REJECT_TIES":
		policyHandler = neuro_handlers.RejectTiesPolicy{}
	}
	if policyHandler == nil {
		return ScenarioSettings{}, fmt.Errorf("tie policy is invalid: %s", tiePolicy)
	}

	return ScenarioSettings{
		Tau:              DefaultTau,
		VRest:            DefaultVRest,
		V0:               DefaultV0,
		StepSize:         DefaultStepSize,
		TStart:           DefaultTStart,
		TEnd:             DefaultTEnd,
		Threshold:        threshold,
		StimulusGain:     DefaultStimulusGain,
		PreviousOutput:   DefaultPreviousOutput,
		TiePolicy:        strings.ToUpper(tiePolicy),
		tiePolicyHandler: policyHandler,
		membrane:         neuro_core.MembraneModel{Tau: DefaultTau, VRest: DefaultVRest},
	}, nil
}

// RecallSettings configures one Hopfield recall batch.
type RecallSettings struct {
	NormalizationFactor float64
	RecallSteps         int
	NoiseFlipCount      int
}

func RecallSettingsFactory(noiseFlipCount int) (RecallSettings, error) {
	if noiseFlipCount < 0 {
		return RecallSettings{}, fmt.Errorf("noise flip count is invalid: %d", noiseFlipCount)
	}
	return RecallSettings{
		NormalizationFactor: DefaultNormalizationFactor,
		RecallSteps:         DefaultRecallSteps,
		NoiseFlipCount:      noiseFlipCount,
	}, nil
}

// Selection event kinds.
const (
	SelectionSingle = "SINGLE"
	SelectionTied   = "TIED"
	SelectionNone   = "NONE"
)

// SelectionEvent is the structured replacement for the reference console
// output: which indices won, or that no winner was chosen.
type SelectionEvent struct {
	Kind    string `json:"kind"`
	Indices []int  `json:"indices"`
}

// SessionStateMessage carries one structured event out of a running session.
type SessionStateMessage struct {
	CommandType  string // "selection", "gate" or "finished"
	SessionState interface{}
}

// SimulationSettings is the on-disk scenario grid the simulation controller
// runs on startup.
type SimulationSettings struct {
	MaxSessionCount int                    `json:"max_session_count"`
	MaxWorkerCount  int                    `json:"max_worker_count"`
	StrikeScenarios []StrikeScenarioConfig `json:"strike_scenarios"`
	RecallBatches   []RecallBatchConfig    `json:"recall_batches"`
}

type StrikeScenarioConfig struct {
	Name      string    `json:"name"`
	Stimuli   []float64 `json:"stimuli"`
	TiePolicy string    `json:"tie_policy"`
	Threshold float64   `json:"threshold"`
}

type RecallBatchConfig struct {
	Name           string `json:"name"`
	NoiseFlipCount int    `json:"noise_flip_count"`
	RecallSteps    int    `json:"recall_steps"`
}

func LoadSimulationSettings(filename string) (*SimulationSettings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var settings SimulationSettings
	err = json.Unmarshal(data, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &settings, nil
}
