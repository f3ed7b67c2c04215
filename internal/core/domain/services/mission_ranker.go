package services

import (
	"sort"
	"time"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
)

// Standing is one row of the leaderboard.
type Standing struct {
	Mover    *mover.Mover
	Missions int
}

// MissionRanker is a stateless domain service that builds the leaderboard.
//
// Item-filtered ranking is a temporal correlation, not a causal trail: a
// mission counts for an item when it ended after the mover first loaded that
// item, even if the item was unloaded before the mission started. Counts can
// therefore be higher than the number of missions that actually carried it.
//
// Example usage:
//
//	ranker := services.NewMissionRanker()
//	standings, err := ranker.RankByItem(itemID, movers, entries)
type MissionRanker struct{}

func NewMissionRanker() MissionRanker {
	return MissionRanker{}
}

// RankAll orders every mover by its completed mission counter, highest first.
// Movers with equal counts keep their relative order from movers.
func (r MissionRanker) RankAll(movers []*mover.Mover) ([]Standing, error) {
	standings := make([]Standing, 0, len(movers))
	for _, m := range movers {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		standings = append(standings, Standing{Mover: m, Missions: m.CompletedMissions()})
	}

	sortStandings(standings)
	return standings, nil
}

// RankByItem counts, per mover, the MISSION_ENDED entries created strictly
// after the mover's earliest LOADING entry that contains itemID.
//
// Parameters:
//   - itemID: the item that qualifies a mover
//   - movers: candidate movers; their order breaks ties
//   - entries: activity entries of any type; irrelevant ones are ignored
//
// Movers that never loaded the item, or have no mission after it, are left out.
func (r MissionRanker) RankByItem(
	itemID kernel.UUID,
	movers []*mover.Mover,
	entries []*activity.Entry,
) ([]Standing, error) {
	firstLoad := make(map[kernel.UUID]time.Time)
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if e.Type() != activity.TypeLoading || !e.ContainsItem(itemID) {
			continue
		}
		if at, ok := firstLoad[e.MoverID()]; !ok || e.CreatedAt().Before(at) {
			firstLoad[e.MoverID()] = e.CreatedAt()
		}
	}

	missions := make(map[kernel.UUID]int, len(firstLoad))
	for _, e := range entries {
		if e.Type() != activity.TypeMissionEnded {
			continue
		}
		loadedAt, ok := firstLoad[e.MoverID()]
		if ok && e.CreatedAt().After(loadedAt) {
			missions[e.MoverID()]++
		}
	}

	standings := make([]Standing, 0, len(missions))
	for _, m := range movers {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if count := missions[m.ID()]; count > 0 {
			standings = append(standings, Standing{Mover: m, Missions: count})
		}
	}

	sortStandings(standings)
	return standings, nil
}

func sortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Missions > standings[j].Missions
	})
}
