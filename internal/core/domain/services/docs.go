// Package services provides domain services that work across several aggregates
// of the mover system and do not naturally belong to any one of them.
//
// The package includes:
//   - MissionRanker: ranks movers by completed missions, optionally only those
//     missions that followed loading a given item
package services
