package mover

import (
	"magicmover/internal/pkg/errs"
)

// Action names the operation that drives a transition.
type Action string

const (
	ActionLoad         Action = "load"
	ActionStartMission Action = "start_mission"
	ActionEndMission   Action = "end_mission"
	ActionUnload       Action = "unload"
)

func (a Action) String() string {
	return string(a)
}

// Transition is one edge of the state machine.
type Transition struct {
	To     State
	Action Action
}

// transitions is the complete decision table. Anything not listed is rejected.
func transitions() map[State][]Transition {
	//nolint:exhaustive // Unknown has no outgoing edges
	return map[State][]Transition{
		Resting: {
			{To: Loading, Action: ActionLoad},
		},
		Loading: {
			{To: Loading, Action: ActionLoad},
			{To: OnMission, Action: ActionStartMission},
			{To: Resting, Action: ActionUnload},
		},
		OnMission: {
			{To: Resting, Action: ActionEndMission},
		},
	}
}

// CanTransition reports whether the edge (from, action) -> to exists.
func CanTransition(from, to State, action Action) bool {
	for _, t := range transitions()[from] {
		if t.To == to && t.Action == action {
			return true
		}
	}
	return false
}

// ValidateTransition returns an *errs.InvalidTransitionError when the edge does not exist.
//
// Example:
//
//	if err := mover.ValidateTransition(m.State(), mover.OnMission, mover.ActionStartMission); err != nil {
//	    return err // "invalid transition: cannot start_mission from RESTING to ON_MISSION"
//	}
func ValidateTransition(from, to State, action Action) error {
	if !CanTransition(from, to, action) {
		return errs.NewInvalidTransitionError(from.String(), to.String(), action.String())
	}
	return nil
}

// AllowedTransitions lists the edges leaving from, in table order.
// The returned slice is owned by the caller.
func AllowedTransitions(from State) []Transition {
	edges := transitions()[from]
	out := make([]Transition, len(edges))
	copy(out, edges)
	return out
}
