package lifecycle

import (
	"errors"
	"testing"

	"haulhub/internal/domain"
)

func TestTransition_AllowedPairs(t *testing.T) {
	testCases := []struct {
		name    string
		current domain.HaulStatus
		action  Action
		want    domain.HaulStatus
	}{
		{"assign from pending", domain.HaulStatusPending, ActionAssign, domain.HaulStatusAssigned},
		{"start from pending", domain.HaulStatusPending, ActionStart, domain.HaulStatusInProgress},
		{"complete from in_progress", domain.HaulStatusInProgress, ActionComplete, domain.HaulStatusCompleted},
		{"cancel from pending", domain.HaulStatusPending, ActionCancel, domain.HaulStatusCancelled},
		{"cancel from assigned", domain.HaulStatusAssigned, ActionCancel, domain.HaulStatusCancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.current, tc.action)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

// TestTransition_RejectsEverythingElse walks the full status x action grid
// and verifies that exactly the five allowed pairs succeed.
func TestTransition_RejectsEverythingElse(t *testing.T) {
	statuses := []domain.HaulStatus{
		domain.HaulStatusPending,
		domain.HaulStatusAssigned,
		domain.HaulStatusInProgress,
		domain.HaulStatusCompleted,
		domain.HaulStatusCancelled,
	}
	actions := []Action{ActionAssign, ActionStart, ActionComplete, ActionCancel}

	allowed := map[domain.HaulStatus]map[Action]bool{
		domain.HaulStatusPending:    {ActionAssign: true, ActionStart: true, ActionCancel: true},
		domain.HaulStatusAssigned:   {ActionCancel: true},
		domain.HaulStatusInProgress: {ActionComplete: true},
	}

	for _, s := range statuses {
		for _, a := range actions {
			_, err := Transition(s, a)
			if allowed[s][a] {
				if err != nil {
					t.Errorf("expected (%s, %s) to be legal, got %v", s, a, err)
				}
				continue
			}

			var invalidErr *InvalidTransitionError
			if !errors.As(err, &invalidErr) {
				t.Errorf("expected InvalidTransitionError for (%s, %s), got %v", s, a, err)
				continue
			}
			if invalidErr.Status != s || invalidErr.Action != a {
				t.Errorf("error should carry (%s, %s), got (%s, %s)", s, a, invalidErr.Status, invalidErr.Action)
			}
		}
	}
}

func TestTransition_ReplayFailsSecondTime(t *testing.T) {
	status, err := Transition(domain.HaulStatusPending, ActionStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.HaulStatusInProgress {
		t.Fatalf("expected in_progress, got %s", status)
	}

	// Replaying start against the new status must fail, with no
	// current-state echo.
	_, err = Transition(status, ActionStart)
	var invalidErr *InvalidTransitionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidTransitionError on replay, got %v", err)
	}
}

func TestTransition_TerminalStatusesAdmitNoAction(t *testing.T) {
	for _, s := range []domain.HaulStatus{domain.HaulStatusCompleted, domain.HaulStatusCancelled} {
		if !IsTerminal(s) {
			t.Errorf("expected %s to be terminal", s)
		}
		for _, a := range []Action{ActionAssign, ActionStart, ActionComplete, ActionCancel} {
			if _, err := Transition(s, a); err == nil {
				t.Errorf("expected %s from %s to fail", a, s)
			}
		}
	}
}

func TestTransition_UnknownActionFails(t *testing.T) {
	_, err := Transition(domain.HaulStatusPending, Action("teleport"))
	var invalidErr *InvalidTransitionError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(domain.HaulStatusAssigned, ActionCancel) {
		t.Error("expected cancel to be legal from assigned")
	}
	if CanTransition(domain.HaulStatusInProgress, ActionCancel) {
		t.Error("expected cancel to be illegal from in_progress")
	}
	if CanTransition(domain.HaulStatusAssigned, ActionStart) {
		t.Error("expected start to be illegal from assigned")
	}
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := &InvalidTransitionError{Status: domain.HaulStatusCompleted, Action: ActionCancel}
	want := "cannot cancel haul in completed status"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
