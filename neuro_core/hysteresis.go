package neuro_core

// GateDecision records the outcome of one hysteresis-gated step: whether the
// drive crossed the threshold (driven) or the retained state was kept (held),
// and the value after the step.
type GateDecision struct {
	Step   int     `json:"step"`
	Driven bool    `json:"driven"`
	Value  float64 `json:"value"`
}

// Hold is the one-shot hysteresis check: the new output is the maximum
// stimulus only when it strictly exceeds the threshold, otherwise the
// previous output is retained. The comparison is > and not >=.
func Hold(maxStimulus, previous, threshold float64) float64 {
	if maxStimulus > threshold {
		return maxStimulus
	}
	return previous
}

// GateStep advances one hysteresis-gated Euler step. When the drive strictly
// exceeds the threshold the value follows the ODE and the retained state
// tracks it; otherwise the value snaps to the retained state, which stays
// unchanged. Returns (newValue, newRetained).
func GateStep(f DerivativeFunc, v, t, drive, dt, threshold, retained float64) (float64, float64) {
	if drive > threshold {
		nv := v + f(v, t, drive)*dt
		return nv, nv
	}
	return retained, retained
}

// IntegrateWithHysteresis runs the streaming hysteresis variant: one gated
// Euler step per integration step, with the drive at step k taken as
// stimuli[k]*gain (zero past the end of the sequence). Output shape matches
// Integrate. observe, when non-nil, is called once per step with the
// DRIVEN/HELD decision.
func IntegrateWithHysteresis(f DerivativeFunc, v0, t0, tf, dt float64, stimuli []float64, gain, threshold, retained float64, observe func(GateDecision)) ([]float64, []float64, error) {
	if err := checkStepConfig(t0, tf, dt); err != nil {
		return nil, nil, err
	}
	nSteps := int((tf - t0) / dt)
	v := v0
	t := t0
	ts := make([]float64, 0, nSteps+1)
	vs := make([]float64, 0, nSteps+1)
	ts = append(ts, t0)
	vs = append(vs, v0)
	for k := 0; k < nSteps; k++ {
		drive := 0.0
		if k < len(stimuli) {
			drive = stimuli[k] * gain
		}
		v, retained = GateStep(f, v, t, drive, dt, threshold, retained)
		t = t + dt
		ts = append(ts, t)
		vs = append(vs, v)
		if observe != nil {
			observe(GateDecision{Step: k, Driven: drive > threshold, Value: v})
		}
	}
	return ts, vs, nil
}
