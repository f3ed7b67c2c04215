// Package ports defines the persistence contracts of the mover domain.
// These interfaces sit between the application layer and the storage adapters,
// so command and query handlers never depend on a concrete database.
//
// Adapters report a missing aggregate with *errs.ObjectNotFoundError and
// return any other storage failure as is; the application layer decides how
// to classify it.
package ports
