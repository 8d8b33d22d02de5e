package training

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedWorkout is returned when a sensor package carries an unknown workout code.
	ErrUnsupportedWorkout = errors.New("unsupported workout type")
	// ErrArity is returned when a sensor package carries the wrong number of readings for its kind.
	ErrArity = errors.New("unexpected number of readings")
	// ErrInvalidReadings is returned when readings such as a zero duration or
	// zero height make a metric infinite or NaN.
	ErrInvalidReadings = errors.New("readings produce non-finite metrics")
)

// Kind is the short workout code sent by the sensors.
type Kind string

const (
	KindSwimming Kind = "SWM"
	KindRunning  Kind = "RUN"
	KindWalking  Kind = "WLK"
)

type constructor struct {
	arity int
	build func(data []float64) Workout
}

var constructors = map[Kind]constructor{
	KindSwimming: {arity: 5, build: func(d []float64) Workout { return NewSwimming(d[0], d[1], d[2], d[3], d[4]) }},
	KindRunning:  {arity: 3, build: func(d []float64) Workout { return NewRunning(d[0], d[1], d[2]) }},
	KindWalking:  {arity: 4, build: func(d []float64) Workout { return NewSportsWalking(d[0], d[1], d[2], d[3]) }},
}

// Kinds lists the supported workout codes.
func Kinds() []Kind {
	return []Kind{KindSwimming, KindRunning, KindWalking}
}

// Arity reports how many readings the given kind expects.
func (k Kind) Arity() (int, bool) {
	c, ok := constructors[k]
	return c.arity, ok
}

// ReadPackage builds the workout for the given code by unpacking the readings
// positionally into the matching constructor.
func ReadPackage(workoutType string, data []float64) (Workout, error) {
	c, ok := constructors[Kind(workoutType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedWorkout, workoutType)
	}
	if len(data) != c.arity {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d", ErrArity, workoutType, c.arity, len(data))
	}
	return c.build(data), nil
}
