package mover

import (
	"errors"
	"fmt"
	"time"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

// Domain errors for mover operations.
var (
	// ErrItemsAreRequired is returned when a load request carries no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrMoverIsNotConstructed is returned when using an improperly initialized Mover.
	ErrMoverIsNotConstructed = errors.New("Mover must be created via NewMover constructor")
)

const missionRequiredReason = "mover must be on mission"

// Mover is the aggregate root of the lifecycle engine. It carries items up to
// its weight limit and records how many missions it has completed.
//
// Business rules:
//   - weightLimit is strictly positive
//   - currentWeight equals the sum of the weights of items after every mutation
//   - currentWeight never exceeds weightLimit
//   - items never holds the same id twice
//   - state changes only through the state machine
//   - completedMissions grows by exactly one per ended mission, never on unload
//
// Example usage:
//
//	limit, _ := kernel.WeightFromFloat(100)
//	m, err := mover.NewMover(kernel.NewUUID(), "Merlin", limit, time.Now())
//	if err != nil {
//	    return err
//	}
//	change, err := m.Load([]*item.Item{feather}, time.Now())
type Mover struct {
	id                kernel.UUID
	name              string
	weightLimit       kernel.Weight
	currentWeight     kernel.Weight
	state             State
	items             []kernel.UUID
	completedMissions int
	// version is the optimistic concurrency token. It grows by one per accepted mutation.
	version   int64
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// Change describes one accepted transition. Weight and ItemCount refer to the
// cargo the transition acted on: the incoming load for Load, the cargo carried
// for StartMission, and the cargo dropped for EndMission and Unload.
type Change struct {
	MoverID           kernel.UUID
	Action            Action
	From              State
	To                State
	ItemIDs           []kernel.UUID
	ItemCount         int
	Weight            kernel.Weight
	CompletedMissions int
	At                time.Time
}

// NewMover creates a resting mover with no cargo at version 0. The name is optional.
func NewMover(id kernel.UUID, name string, weightLimit kernel.Weight, now time.Time) (*Mover, error) {
	m := &Mover{
		name:          name,
		currentWeight: kernel.ZeroWeight(),
		state:         Resting,
		items:         []kernel.UUID{},
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setWeightLimit(weightLimit),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMover reconstructs a Mover from storage.
//
// Only structural validity is enforced here (valid id, state and weights,
// non-negative counters). Cargo consistency is not re-checked, so a corrupted
// record can still be loaded and reported by the invariant audit.
func RestoreMover(
	id kernel.UUID,
	name string,
	weightLimit kernel.Weight,
	currentWeight kernel.Weight,
	state State,
	items []kernel.UUID,
	completedMissions int,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Mover, error) {
	m := &Mover{
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setWeightLimit(weightLimit),
		m.setCurrentWeight(currentWeight),
		m.setState(state),
		m.setItems(items),
		m.setCompletedMissions(completedMissions),
		m.setVersion(version),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Mover) Validate() error {
	if m == nil {
		return ErrMoverIsNotConstructed
	}
	return m.guard.Validate(ErrMoverIsNotConstructed)
}

func (m *Mover) ID() kernel.UUID {
	return m.id
}

func (m *Mover) Name() string {
	return m.name
}

func (m *Mover) WeightLimit() kernel.Weight {
	return m.weightLimit
}

func (m *Mover) CurrentWeight() kernel.Weight {
	return m.currentWeight
}

func (m *Mover) State() State {
	return m.state
}

// Items returns a copy of the carried item ids in load order.
func (m *Mover) Items() []kernel.UUID {
	out := make([]kernel.UUID, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Mover) CompletedMissions() int {
	return m.completedMissions
}

func (m *Mover) Version() int64 {
	return m.version
}

func (m *Mover) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Mover) UpdatedAt() time.Time {
	return m.updatedAt
}

// Load puts items aboard and moves the mover to LOADING.
//
// Checks run in this order and nothing is mutated unless all pass:
//  1. no item is already aboard or repeated in items (*errs.DuplicateItemError)
//  2. the state machine allows load (*errs.InvalidTransitionError when ON_MISSION)
//  3. current weight plus the incoming weight fits the limit (*errs.CapacityExceededError)
func (m *Mover) Load(items []*item.Item, now time.Time) (Change, error) {
	if len(items) == 0 {
		return Change{}, ErrItemsAreRequired
	}

	if duplicates := m.findDuplicates(items); len(duplicates) > 0 {
		return Change{}, errs.NewDuplicateItemError(duplicates)
	}

	incoming := item.TotalWeight(items)

	if err := ValidateTransition(m.state, Loading, ActionLoad); err != nil {
		return Change{}, err
	}

	projected := m.currentWeight.Add(incoming)
	if projected.GreaterThan(m.weightLimit) {
		return Change{}, errs.NewCapacityExceededError(
			m.currentWeight.String(),
			incoming.String(),
			m.weightLimit.String(),
		)
	}

	ids := make([]kernel.UUID, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID())
	}

	from := m.state
	m.items = append(m.items, ids...)
	m.currentWeight = projected
	m.state = Loading
	m.touch(now)

	return Change{
		MoverID:           m.id,
		Action:            ActionLoad,
		From:              from,
		To:                Loading,
		ItemIDs:           ids,
		ItemCount:         len(ids),
		Weight:            incoming,
		CompletedMissions: m.completedMissions,
		At:                now,
	}, nil
}

// StartMission moves a loading mover to ON_MISSION. Cargo is kept.
func (m *Mover) StartMission(now time.Time) (Change, error) {
	if err := ValidateTransition(m.state, OnMission, ActionStartMission); err != nil {
		return Change{}, err
	}

	from := m.state
	m.state = OnMission
	m.touch(now)

	return m.cargoChange(ActionStartMission, from, m.Items(), m.currentWeight, now), nil
}

// EndMission returns a mover from its mission: cargo is delivered, the mover
// rests and its mission counter grows by one.
func (m *Mover) EndMission(now time.Time) (Change, error) {
	if m.state != OnMission {
		return Change{}, errs.NewInvalidTransitionErrorWithReason(
			m.state.String(), Resting.String(), ActionEndMission.String(), missionRequiredReason,
		)
	}
	if err := ValidateTransition(m.state, Resting, ActionEndMission); err != nil {
		return Change{}, err
	}

	from := m.state
	delivered, deliveredWeight := m.clearCargo()
	m.state = Resting
	m.completedMissions++
	m.touch(now)

	return m.cargoChange(ActionEndMission, from, delivered, deliveredWeight, now), nil
}

// Unload drops all cargo of a loading mover without counting a mission.
func (m *Mover) Unload(now time.Time) (Change, error) {
	if err := ValidateTransition(m.state, Resting, ActionUnload); err != nil {
		return Change{}, err
	}

	from := m.state
	dropped, droppedWeight := m.clearCargo()
	m.state = Resting
	m.touch(now)

	return m.cargoChange(ActionUnload, from, dropped, droppedWeight, now), nil
}

// VerifyCargo checks the cargo invariants against the items the mover carries.
// cargo must hold the items referenced by the mover; missing ones are reported.
// All violations are joined into one error.
func (m *Mover) VerifyCargo(cargo []*item.Item) error {
	byID := make(map[kernel.UUID]*item.Item, len(cargo))
	for _, i := range cargo {
		byID[i.ID()] = i
	}

	var violations []error
	seen := make(map[kernel.UUID]struct{}, len(m.items))
	total := kernel.ZeroWeight()
	for _, id := range m.items {
		if _, ok := seen[id]; ok {
			violations = append(violations, errs.NewDuplicateItemError([]string{id.String()}))
			continue
		}
		seen[id] = struct{}{}

		i, ok := byID[id]
		if !ok {
			violations = append(violations, errs.NewObjectNotFoundError("item", id.String()))
			continue
		}
		total = total.Add(i.Weight())
	}

	if !total.IsEqual(m.currentWeight) {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
			"current weight",
			fmt.Errorf("%s does not match cargo weight %s", m.currentWeight, total),
		))
	}
	if m.currentWeight.GreaterThan(m.weightLimit) {
		violations = append(violations, errs.NewValueIsOutOfRangeError(
			"current weight", m.currentWeight.String(), 0, m.weightLimit.String(),
		))
	}

	return errors.Join(violations...)
}

func (m *Mover) findDuplicates(items []*item.Item) []string {
	aboard := make(map[kernel.UUID]struct{}, len(m.items))
	for _, id := range m.items {
		aboard[id] = struct{}{}
	}

	requested := make(map[kernel.UUID]struct{}, len(items))
	reported := make(map[kernel.UUID]struct{})
	var duplicates []string
	for _, i := range items {
		id := i.ID()
		_, isAboard := aboard[id]
		_, isRepeated := requested[id]
		requested[id] = struct{}{}
		if !isAboard && !isRepeated {
			continue
		}
		if _, ok := reported[id]; ok {
			continue
		}
		reported[id] = struct{}{}
		duplicates = append(duplicates, id.String())
	}
	return duplicates
}

func (m *Mover) clearCargo() ([]kernel.UUID, kernel.Weight) {
	cargo, weight := m.items, m.currentWeight
	m.items = []kernel.UUID{}
	m.currentWeight = kernel.ZeroWeight()
	return cargo, weight
}

func (m *Mover) cargoChange(action Action, from State, ids []kernel.UUID, weight kernel.Weight, now time.Time) Change {
	return Change{
		MoverID:           m.id,
		Action:            action,
		From:              from,
		To:                m.state,
		ItemIDs:           ids,
		ItemCount:         len(ids),
		Weight:            weight,
		CompletedMissions: m.completedMissions,
		At:                now,
	}
}

func (m *Mover) touch(now time.Time) {
	m.version++
	m.updatedAt = now
}

func (m *Mover) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Mover) setWeightLimit(limit kernel.Weight) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	if !limit.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight limit",
			fmt.Errorf("%s is not greater than 0", limit.String()),
		)
	}
	m.weightLimit = limit
	return nil
}

func (m *Mover) setCurrentWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	m.currentWeight = weight
	return nil
}

func (m *Mover) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	m.state = state
	return nil
}

func (m *Mover) setItems(items []kernel.UUID) error {
	m.items = make([]kernel.UUID, 0, len(items))
	for _, id := range items {
		if err := id.Validate(); err != nil {
			return err
		}
		m.items = append(m.items, id)
	}
	return nil
}

func (m *Mover) setCompletedMissions(completed int) error {
	if completed < 0 {
		return errs.NewValueIsOutOfRangeError("completed missions", completed, 0, "unbounded")
	}
	m.completedMissions = completed
	return nil
}

func (m *Mover) setVersion(version int64) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	m.version = version
	return nil
}
