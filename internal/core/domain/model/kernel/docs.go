// Package kernel holds the shared value objects of the mover domain:
// identifiers (UUID) and cargo weights (Weight).
//
// Value objects are immutable, compared by value, and must be built through
// their constructors; the zero value of each type fails Validate.
package kernel
