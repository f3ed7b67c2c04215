package ports

import (
	"context"

	"magicmover/internal/core/domain/model/kernel"
)

// Ranking is a cached leaderboard row.
type Ranking struct {
	MoverID  kernel.UUID
	Missions int
}

// LeaderboardCache keeps item-filtered leaderboards between mission ends.
//
// Entries belong to a generation. A reader takes the generation before it
// reads the activity log and uses it for both Get and Set; Invalidate moves
// to a new generation, so rankings computed before an invalidation are never
// served after it.
type LeaderboardCache interface {
	// Generation returns the current generation.
	Generation(ctx context.Context) (int64, error)

	// Get returns the rankings cached for itemID in generation. found is false on a miss.
	Get(ctx context.Context, generation int64, itemID kernel.UUID) (rankings []Ranking, found bool, err error)

	// Set stores rankings for itemID in generation. Writes for a generation
	// that is no longer current are never visible to readers.
	Set(ctx context.Context, generation int64, itemID kernel.UUID, rankings []Ranking) error

	// Invalidate starts a new generation and drops every cached leaderboard.
	Invalidate(ctx context.Context) error
}
