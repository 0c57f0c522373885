package domain

import "errors"

// ErrSetup marks failures to set up an attempt. They are not shrinkable.
var ErrSetup = errors.New("setup failed")

// ErrInitialPrecondition is returned when Behavior.InitializePrecondition rejects the model.
var ErrInitialPrecondition = errors.New("initial precondition failed")

// ErrEmptyCommandPool is returned when Behavior.GenerateCommands yields no selectable command.
var ErrEmptyCommandPool = errors.New("command pool is empty")

// ErrGenerationExhausted is returned when no command's precondition held within the retry ceiling.
var ErrGenerationExhausted = errors.New("no eligible command")

// ErrPreconditionViolated is the cause of a precondition failure during execution.
var ErrPreconditionViolated = errors.New("precondition violated")

// ErrPostconditionViolated is the cause of a postcondition failure.
var ErrPostconditionViolated = errors.New("postcondition violated")

// ErrRunTimeout is the cause of a run that exceeded the configured timeout.
var ErrRunTimeout = errors.New("run timed out")

// ErrRunPanic is the cause of a run that panicked.
var ErrRunPanic = errors.New("run panicked")

// ErrCounterexampleNotFound is returned when an ID cannot be found in the store.
var ErrCounterexampleNotFound = errors.New("counterexample not found")

// ErrInvalidConfig is returned by configuration validation.
var ErrInvalidConfig = errors.New("invalid config")

// SetupError reports which stage of an attempt's setup failed.
// It matches both ErrSetup and the underlying cause with errors.Is.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return "setup: " + e.Stage + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() []error {
	return []error{ErrSetup, e.Err}
}
