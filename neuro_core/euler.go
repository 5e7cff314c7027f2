package neuro_core

import "fmt"

// DerivativeFunc is the right-hand side of a scalar first-order ODE
// dV/dt = f(V, t, I_ext).
type DerivativeFunc func(v float64, t float64, iExt float64) float64

// MembraneModel holds the constants of the leaky-integrator equation
// dV/dt = (-(V - VRest) + I_ext) / Tau.
type MembraneModel struct {
	Tau   float64
	VRest float64
}

func DefaultMembraneModel() MembraneModel {
	return MembraneModel{Tau: 10, VRest: -65}
}

func (m MembraneModel) Derivative(v float64, t float64, iExt float64) float64 {
	return (-(v-m.VRest) + iExt) / m.Tau
}

// Integrate advances v0 from t0 to tf with explicit forward-Euler steps of
// size dt and a constant external input. The step count is computed once as
// floor((tf-t0)/dt) and both returned sequences have length nSteps+1, with
// the initial condition at index 0. Stateless: identical arguments always
// produce identical output.
func Integrate(f DerivativeFunc, v0, t0, tf, dt, iExt float64) ([]float64, []float64, error) {
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
		v = v + f(v, t, iExt)*dt
		t = t + dt
		ts = append(ts, t)
		vs = append(vs, v)
	}
	return ts, vs, nil
}

func checkStepConfig(t0, tf, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: step size must be positive, got %v", ErrInvalidStepConfig, dt)
	}
	if tf < t0 {
		return fmt.Errorf("%w: t_end %v is before t_start %v", ErrInvalidStepConfig, tf, t0)
	}
	return nil
}
