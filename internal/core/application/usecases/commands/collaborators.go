// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every mover command follows the same pattern: validation, read, domain
// transition, version-conditioned write, then a best-effort activity entry.
package commands

import (
	"errors"
	"time"

	"magicmover/internal/pkg/errs"
)

// Clock supplies transition timestamps. Production code passes time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// storageError keeps domain errors from adapters intact and classifies
// everything else as a persistence failure of op.
func storageError(op string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	return errs.NewPersistenceError(op, err)
}
