package mover

import (
	"fmt"

	"magicmover/internal/pkg/errs"
)

// State represents the lifecycle state of a mover.
//
// State is a value object: it validates itself and renders the upper-case
// names used in the API and in storage ("RESTING", "LOADING", "ON_MISSION").
// Transitions between states are decided by the state machine in
// state_machine.go, never by comparing states directly.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Resting is the initial state. A resting mover carries no cargo.
	Resting

	// Loading indicates the mover has accepted cargo and may take more,
	// start a mission, or unload.
	Loading

	// OnMission indicates the mover is away with its cargo. The only way
	// back is ending the mission.
	OnMission
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "UNKNOWN",
		Resting:   "RESTING",
		Loading:   "LOADING",
		OnMission: "ON_MISSION",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Resting:   "RESTING",
		Loading:   "LOADING",
		OnMission: "ON_MISSION",
	}
}

// ParseState converts a persisted or client supplied name back into a State.
//
// Returns:
//   - the matching State for "RESTING", "LOADING" or "ON_MISSION"
//   - (Unknown, error) for any other input, including "UNKNOWN"
//
// Example:
//
//	state, err := mover.ParseState(row.State)
//	if err != nil {
//	    return nil, err
//	}
func ParseState(value string) (State, error) {
	for state, name := range getValidStateStrings() {
		if name == value {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state is invalid",
		fmt.Errorf("%q is not a valid state", value),
	)
}

// Validate checks if the State value is one of Resting, Loading or OnMission.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%d is not a valid state", s),
		)
	}
	return nil
}

// String implements fmt.Stringer and is safe to call on any State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
