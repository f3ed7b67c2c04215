package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrDuplicateItem       = errors.New("duplicate item")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrPersistence         = errors.New("persistence failure")
)

type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectsNotFoundError reports every id of a batch lookup that had no match.
type ObjectsNotFoundError struct {
	ParamName string
	IDs       []string
}

func NewObjectsNotFoundError(paramName string, ids []string) *ObjectsNotFoundError {
	return &ObjectsNotFoundError{ParamName: paramName, IDs: ids}
}

func (e *ObjectsNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, strings.Join(e.IDs, ", "))
}

func (e *ObjectsNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError carries the attempted edge of the state machine.
// Reason, when set, replaces the generic message.
type InvalidTransitionError struct {
	From   string
	To     string
	Action string
	Reason string
}

func NewInvalidTransitionError(from, to, action string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Action: action}
}

func NewInvalidTransitionErrorWithReason(from, to, action, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Action: action, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (state is %s)", ErrInvalidTransition, e.Reason, e.From)
	}
	return fmt.Sprintf("%s: cannot %s from %s to %s", ErrInvalidTransition, e.Action, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type DuplicateItemError struct {
	IDs []string
}

func NewDuplicateItemError(ids []string) *DuplicateItemError {
	return &DuplicateItemError{IDs: ids}
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("%s: %s already aboard", ErrDuplicateItem, strings.Join(e.IDs, ", "))
}

func (e *DuplicateItemError) Unwrap() error {
	return ErrDuplicateItem
}

// CapacityExceededError values are decimal strings so no precision is lost in reporting.
type CapacityExceededError struct {
	Current  string
	Incoming string
	Limit    string
}

func NewCapacityExceededError(current, incoming, limit string) *CapacityExceededError {
	return &CapacityExceededError{Current: current, Incoming: incoming, Limit: limit}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: current weight %s plus incoming %s exceeds limit %s",
		ErrCapacityExceeded, e.Current, e.Incoming, e.Limit)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

type ConcurrencyConflictError struct {
	ParamName       string
	ID              string
	ExpectedVersion int64
}

func NewConcurrencyConflictError(paramName, id string, expectedVersion int64) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, ExpectedVersion: expectedVersion}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified after version %d was read",
		ErrConcurrencyConflict, e.ParamName, e.ID, e.ExpectedVersion)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Operation), e.Cause)
}

// Unwrap exposes both the sentinel and the storage cause.
func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Cause}
}
