// Package workflow - confirm-before-persist edit workflows and list views
package workflow

import (
	"errors"
	"fmt"
)

// State edit workflow state ENUM
type State string

const (
	// StateLoading the record is being fetched
	StateLoading State = "LOADING"
	// StateLoadFailed the record could not be fetched; terminal
	StateLoadFailed State = "LOAD_FAILED"
	// StateReady the form is editable
	StateReady State = "READY"
	// StateAwaitingConfirm submission is waiting for confirmation
	StateAwaitingConfirm State = "AWAITING_CONFIRM"
	// StatePersisting the record is being written
	StatePersisting State = "PERSISTING"
	// StateDone the record was written and the user navigated away; terminal
	StateDone State = "DONE"
)

// ErrInvalidTransition the operation is not allowed from the current state
var ErrInvalidTransition = errors.New("invalid workflow transition")

// stateTransitions every allowed transition
var stateTransitions = map[State]map[State]bool{
	StateLoading: {
		StateReady:      true,
		StateLoadFailed: true,
	},
	StateLoadFailed: {},
	StateReady: {
		StateReady:           true,
		StateAwaitingConfirm: true,
	},
	StateAwaitingConfirm: {
		StateReady:      true,
		StatePersisting: true,
	},
	StatePersisting: {
		StateReady: true,
		StateDone:  true,
	},
	StateDone: {},
}

// ValidateNextState verify the workflow can move from one state to another
func ValidateNextState(current State, next State) error {
	availableNextStates, ok := stateTransitions[current]
	if !ok {
		return fmt.Errorf("%w: unknown state '%s'", ErrInvalidTransition, current)
	}
	if !availableNextStates[next] {
		return fmt.Errorf("%w: '%s' to '%s'", ErrInvalidTransition, current, next)
	}
	return nil
}

// Terminal whether no transition leaves the state
func (s State) Terminal() bool {
	return len(stateTransitions[s]) == 0
}
