package neuro_controllers

import (
	"neuro_sim"
	"neuro_sim/neuro_core"
)

type StrikeController struct {
}

// StartStrikeSession runs one strike session and forwards its events to the
// session state channel. The selection and finished events always go out;
// per-step gate events are thinned to every sendIterStep-th step once
// sendIterThreshold steps have passed, and are forwarded only while a
// listener has enabled streaming through enableChannel (a nil enableChannel
// leaves streaming always on). Sends never block: with no listener attached
// the message is dropped.
func (c StrikeController) StartStrikeSession(settings neuro_sim.ScenarioSettings, stimuli []float64, stateChannel chan neuro_sim.SessionStateMessage, sendIterThreshold int, sendIterStep int, enableChannel chan bool) (neuro_sim.StrikeData, error) {
	streaming := enableChannel == nil
	notify := func(msg neuro_sim.SessionStateMessage) {
		if enableChannel != nil {
			select {
			case enabled := <-enableChannel:
				streaming = enabled
			default:
			}
		}
		if msg.CommandType == "gate" {
			if !streaming {
				return
			}
			decision, ok := msg.SessionState.(neuro_core.GateDecision)
			if !ok {
				return
			}
			if decision.Step < sendIterThreshold || decision.Step%sendIterStep != 0 {
				return
			}
		}
		trySend(stateChannel, msg)
	}
	return neuro_sim.StrikeSession(settings, stimuli, notify)
}

func trySend(stateChannel chan neuro_sim.SessionStateMessage, msg neuro_sim.SessionStateMessage) {
	if stateChannel == nil {
		return
	}
	select {
	case stateChannel <- msg:
	default:
	}
}
