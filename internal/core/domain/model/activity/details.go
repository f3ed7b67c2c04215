package activity

import (
	"fmt"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/pkg/errs"
)

// Details is implemented only by the variants in this file.
type Details interface {
	Type() Type
	Change() StateChange
	isDetails()
}

// StateChange is the part every variant shares. TotalWeight is the weight of
// the cargo the transition acted on.
type StateChange struct {
	PreviousState mover.State
	NewState      mover.State
	ItemCount     int
	TotalWeight   kernel.Weight
}

func (s StateChange) Change() StateChange {
	return s
}

// LoadingDetails describes the items that came aboard in one load.
type LoadingDetails struct {
	StateChange
	ItemIDs []kernel.UUID
}

func (LoadingDetails) Type() Type { return TypeLoading }
func (LoadingDetails) isDetails() {}

// UnloadingDetails describes the cargo dropped by an unload.
type UnloadingDetails struct {
	StateChange
}

func (UnloadingDetails) Type() Type { return TypeUnloading }
func (UnloadingDetails) isDetails() {}

// MissionStartedDetails snapshots the cargo leaving on a mission.
type MissionStartedDetails struct {
	StateChange
}

func (MissionStartedDetails) Type() Type { return TypeMissionStarted }
func (MissionStartedDetails) isDetails() {}

// MissionEndedDetails records the delivered cargo and the mover's new mission total.
type MissionEndedDetails struct {
	StateChange
	CompletedMissions int
}

func (MissionEndedDetails) Type() Type { return TypeMissionEnded }
func (MissionEndedDetails) isDetails() {}

// DetailsFromChange maps an accepted mover transition to its log variant.
func DetailsFromChange(c mover.Change) (Details, error) {
	base := StateChange{
		PreviousState: c.From,
		NewState:      c.To,
		ItemCount:     c.ItemCount,
		TotalWeight:   c.Weight,
	}

	switch c.Action {
	case mover.ActionLoad:
		ids := make([]kernel.UUID, len(c.ItemIDs))
		copy(ids, c.ItemIDs)
		return LoadingDetails{StateChange: base, ItemIDs: ids}, nil
	case mover.ActionUnload:
		return UnloadingDetails{StateChange: base}, nil
	case mover.ActionStartMission:
		return MissionStartedDetails{StateChange: base}, nil
	case mover.ActionEndMission:
		return MissionEndedDetails{StateChange: base, CompletedMissions: c.CompletedMissions}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%q has no activity type", c.Action.String()),
		)
	}
}

// FlatDetails is the storage shape of Details. Fields that a variant does not
// carry stay at their zero value. JSON names are part of the persisted format.
type FlatDetails struct {
	PreviousState     string   `json:"previousState"`
	NewState          string   `json:"newState"`
	ItemIDs           []string `json:"itemIds,omitempty"`
	ItemCount         int      `json:"itemCount"`
	TotalWeight       string   `json:"totalWeight"`
	CompletedMissions *int     `json:"completedMissions,omitempty"`
}

func Flatten(d Details) FlatDetails {
	c := d.Change()
	flat := FlatDetails{
		PreviousState: c.PreviousState.String(),
		NewState:      c.NewState.String(),
		ItemCount:     c.ItemCount,
		TotalWeight:   c.TotalWeight.String(),
	}

	switch v := d.(type) {
	case LoadingDetails:
		flat.ItemIDs = kernel.UUIDsToStrings(v.ItemIDs)
	case MissionEndedDetails:
		completed := v.CompletedMissions
		flat.CompletedMissions = &completed
	}

	return flat
}

// RestoreDetails rebuilds the variant for t from its storage shape.
func RestoreDetails(t Type, flat FlatDetails) (Details, error) {
	previous, err := mover.ParseState(flat.PreviousState)
	if err != nil {
		return nil, err
	}
	next, err := mover.ParseState(flat.NewState)
	if err != nil {
		return nil, err
	}
	total, err := kernel.WeightFromString(flat.TotalWeight)
	if err != nil {
		return nil, err
	}

	base := StateChange{
		PreviousState: previous,
		NewState:      next,
		ItemCount:     flat.ItemCount,
		TotalWeight:   total,
	}

	switch t {
	case TypeLoading:
		ids, err := kernel.UUIDsFromStrings(flat.ItemIDs)
		if err != nil {
			return nil, err
		}
		return LoadingDetails{StateChange: base, ItemIDs: ids}, nil
	case TypeUnloading:
		return UnloadingDetails{StateChange: base}, nil
	case TypeMissionStarted:
		return MissionStartedDetails{StateChange: base}, nil
	case TypeMissionEnded:
		if flat.CompletedMissions == nil {
			return nil, errs.NewValueIsRequiredError("completed missions")
		}
		return MissionEndedDetails{StateChange: base, CompletedMissions: *flat.CompletedMissions}, nil
	default:
		return nil, t.Validate()
	}
}
