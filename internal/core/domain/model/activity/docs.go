// Package activity models the append-only activity log of movers.
//
// Each Entry records one accepted mover transition. Its Details are a closed
// set of variants keyed by Type, so a LOADING entry always carries the loaded
// item ids and a MISSION_ENDED entry always carries the new mission total.
// FlatDetails is the storage shape shared by the persistence adapters.
package activity
