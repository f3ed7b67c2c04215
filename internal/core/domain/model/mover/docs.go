// Package mover contains the Mover aggregate and the lifecycle state machine
// that governs it.
//
// A mover cycles through three states:
//
//	RESTING ──load──> LOADING ──start_mission──> ON_MISSION
//	   ^               │  ^ │                        │
//	   │               │  └─┘ load                   │
//	   └────unload─────┘                             │
//	   ^                                             │
//	   └──────────────────end_mission────────────────┘
//
// Every mutating method on Mover consults the state machine before touching any
// field, so a rejected operation leaves the aggregate exactly as it was. Each
// accepted mutation increments the version used for optimistic concurrency and
// returns a Change describing what happened, from which activity log entries
// are built.
package mover
