package neuro_core

import "errors"

var (
	// ErrInvalidStepConfig is returned before any integration starts when
	// the step size is not positive or the time window is reversed.
	ErrInvalidStepConfig = errors.New("invalid step configuration")

	// ErrEmptyStimulusSet is returned when winner selection is asked to
	// pick from an empty stimulus vector.
	ErrEmptyStimulusSet = errors.New("empty stimulus set")

	// ErrLengthMismatch is returned when training patterns differ in
	// length, or a recall query does not match the weight matrix dimension.
	ErrLengthMismatch = errors.New("pattern length mismatch")
)
