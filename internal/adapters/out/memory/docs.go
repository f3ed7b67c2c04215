// Package memory provides map-backed implementations of the storage ports.
//
// The repositories keep copies of aggregates, never the caller's pointers, so
// a mutated but uncommitted mover is invisible to other readers exactly as
// with a database. They back the "memory" storage driver and the unit tests
// of the application layer. LeaderboardCache is the in-process cache used by
// the "memory" driver when no Redis is configured.
package memory
