package activity

import (
	"errors"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

var (
	// ErrDetailsAreRequired is returned when an entry is created without details.
	ErrDetailsAreRequired = errs.NewValueIsRequiredError("details")
	// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
)

// Entry is one immutable record of the activity log. The mover id is not
// checked against existing movers.
type Entry struct {
	id        kernel.UUID
	moverID   kernel.UUID
	details   Details
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewEntry(id kernel.UUID, moverID kernel.UUID, details Details, createdAt time.Time) (*Entry, error) {
	e := &Entry{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setMoverID(moverID),
		e.setDetails(details),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry rebuilds an entry loaded from storage.
func RestoreEntry(id kernel.UUID, moverID kernel.UUID, details Details, createdAt time.Time) (*Entry, error) {
	return NewEntry(id, moverID, details, createdAt)
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) MoverID() kernel.UUID {
	return e.moverID
}

func (e *Entry) Type() Type {
	return e.details.Type()
}

func (e *Entry) Details() Details {
	return e.details
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// ContainsItem reports whether the entry is a load that brought itemID aboard.
func (e *Entry) ContainsItem(itemID kernel.UUID) bool {
	loading, ok := e.details.(LoadingDetails)
	if !ok {
		return false
	}
	for _, id := range loading.ItemIDs {
		if id.IsEqual(itemID) {
			return true
		}
	}
	return false
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setMoverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.moverID = id
	return nil
}

func (e *Entry) setDetails(details Details) error {
	if details == nil {
		return ErrDetailsAreRequired
	}
	e.details = details
	return nil
}
