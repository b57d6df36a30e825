package progression

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks option sets that select no buildable goal or
	// strategy. It is fatal for the player's generation.
	ErrConfiguration = errors.New("invalid goal configuration")

	// ErrPrecondition marks calls made in an order the build graph cannot
	// satisfy on its own. It indicates a caller bug.
	ErrPrecondition = errors.New("progression precondition not met")
)

// ConfigurationError reports which option made the configuration unusable.
type ConfigurationError struct {
	Option string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s=%v: %s", ErrConfiguration, e.Option, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// PreconditionError reports an operation that ran before what it depends on.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrPrecondition, e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
