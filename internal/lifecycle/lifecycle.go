// Package lifecycle implements the haul status state machine. It is a
// pure decision layer: callers pass in the current status and the
// requested action, and get back the resulting status or an error. The
// caller persists the new status; nothing here touches storage or the
// clock, so the same controller is safe to reuse across requests.
package lifecycle

import (
	"fmt"

	"haulhub/internal/domain"
)

// Action is a requested lifecycle operation on a haul.
type Action string

const (
	ActionAssign   Action = "assign"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// InvalidTransitionError reports an action that is not legal from the
// haul's current status. It carries both so the API layer can surface a
// precise message without re-deriving state.
type InvalidTransitionError struct {
	Status domain.HaulStatus
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s haul in %s status", e.Action, e.Status)
}

// transitions maps each action to the statuses it is legal from and the
// status it produces.
var transitions = map[Action]struct {
	from   []domain.HaulStatus
	result domain.HaulStatus
}{
	ActionAssign:   {from: []domain.HaulStatus{domain.HaulStatusPending}, result: domain.HaulStatusAssigned},
	ActionStart:    {from: []domain.HaulStatus{domain.HaulStatusPending}, result: domain.HaulStatusInProgress},
	ActionComplete: {from: []domain.HaulStatus{domain.HaulStatusInProgress}, result: domain.HaulStatusCompleted},
	ActionCancel:   {from: []domain.HaulStatus{domain.HaulStatusPending, domain.HaulStatusAssigned}, result: domain.HaulStatusCancelled},
}

// Transition returns the status a haul moves to when action is applied
// from current. Illegal (status, action) pairs, including any action on
// the terminal completed/cancelled statuses and replays of an already
// applied action, fail with *InvalidTransitionError.
func Transition(current domain.HaulStatus, action Action) (domain.HaulStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return "", &InvalidTransitionError{Status: current, Action: action}
	}

	for _, s := range t.from {
		if s == current {
			return t.result, nil
		}
	}

	return "", &InvalidTransitionError{Status: current, Action: action}
}

// CanTransition reports whether action is legal from current without
// computing the resulting status. Used by list views to decide which
// action buttons to render.
func CanTransition(current domain.HaulStatus, action Action) bool {
	_, err := Transition(current, action)
	return err == nil
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status domain.HaulStatus) bool {
	return status == domain.HaulStatusCompleted || status == domain.HaulStatusCancelled
}
