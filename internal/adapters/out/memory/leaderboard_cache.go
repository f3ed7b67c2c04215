package memory

import (
	"context"
	"slices"
	"sync"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
)

var _ ports.LeaderboardCache = (*LeaderboardCache)(nil)

// LeaderboardCache holds the leaderboards of the current generation only.
// Entries never expire; Invalidate is the only way out.
type LeaderboardCache struct {
	mu         sync.Mutex
	generation int64
	entries    map[kernel.UUID][]ports.Ranking
}

func NewLeaderboardCache() *LeaderboardCache {
	return &LeaderboardCache{entries: make(map[kernel.UUID][]ports.Ranking)}
}

func (c *LeaderboardCache) Generation(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generation, nil
}

func (c *LeaderboardCache) Get(_ context.Context, generation int64, itemID kernel.UUID) ([]ports.Ranking, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return nil, false, nil
	}
	rankings, ok := c.entries[itemID]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(rankings), true, nil
}

// Set drops writes for a generation other than the current one.
func (c *LeaderboardCache) Set(_ context.Context, generation int64, itemID kernel.UUID, rankings []ports.Ranking) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return nil
	}
	stored := slices.Clone(rankings)
	if stored == nil {
		stored = []ports.Ranking{}
	}
	c.entries[itemID] = stored
	return nil
}

func (c *LeaderboardCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries = make(map[kernel.UUID][]ports.Ranking)
	return nil
}
