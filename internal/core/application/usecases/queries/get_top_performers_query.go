package queries

import (
	"context"
	"errors"
	"log/slog"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/domain/services"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetTopPerformersQueryIsNotConstructed = errors.New(
	"GetTopPerformersQuery must be created via NewGetTopPerformersQuery constructor",
)

// GetTopPerformersQuery asks for the leaderboard, optionally restricted to
// missions that followed loading one item.
//
// Example:
//
//	all := NewGetTopPerformersQuery(nil)
//	byItem := NewGetTopPerformersQuery(&featherID)
type GetTopPerformersQuery struct {
	itemID *kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetTopPerformersQuery(itemID *kernel.UUID) GetTopPerformersQuery {
	q := GetTopPerformersQuery{guard: guard.NewConstructorGuard()}
	if itemID != nil {
		id := *itemID
		q.itemID = &id
	}
	return q
}

func (q GetTopPerformersQuery) Validate() error {
	return q.guard.Validate(ErrGetTopPerformersQueryIsNotConstructed)
}

// ItemID returns the item filter and whether one is set.
func (q GetTopPerformersQuery) ItemID() (kernel.UUID, bool) {
	if q.itemID == nil {
		return kernel.UUID{}, false
	}
	return *q.itemID, true
}

// GetTopPerformersQueryHandler builds leaderboards from the mover repository
// and the activity log. Item-filtered leaderboards go through the cache when
// one is configured; cache failures are logged and fall back to the log.
type GetTopPerformersQueryHandler struct {
	movers ports.MoverRepository
	log    ports.ActivityLogRepository
	cache  ports.LeaderboardCache
	ranker services.MissionRanker
	logger *slog.Logger
}

// NewGetTopPerformersQueryHandler creates the handler. cache may be nil.
func NewGetTopPerformersQueryHandler(
	movers ports.MoverRepository,
	log ports.ActivityLogRepository,
	cache ports.LeaderboardCache,
	logger *slog.Logger,
) GetTopPerformersQueryHandler {
	return GetTopPerformersQueryHandler{
		movers: movers,
		log:    log,
		cache:  cache,
		ranker: services.NewMissionRanker(),
		logger: logger.With("component", "leaderboard"),
	}
}

func (h GetTopPerformersQueryHandler) Handle(ctx context.Context, query GetTopPerformersQuery) ([]PerformerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movers, err := h.movers.GetAll(ctx)
	if err != nil {
		return nil, storageError("list movers", err)
	}

	itemID, filtered := query.ItemID()
	if !filtered {
		standings, err := h.ranker.RankAll(movers)
		if err != nil {
			return nil, err
		}
		return toPerformers(standings), nil
	}

	generation, cacheable := h.generation(ctx, itemID)
	if cacheable {
		if rankings, ok := h.cached(ctx, generation, itemID); ok {
			return fromRankings(rankings, movers), nil
		}
	}

	standings, err := h.rankByItem(ctx, itemID, movers)
	if err != nil {
		return nil, err
	}

	if cacheable {
		h.store(ctx, generation, itemID, standings)
	}
	return toPerformers(standings), nil
}

func (h GetTopPerformersQueryHandler) rankByItem(
	ctx context.Context,
	itemID kernel.UUID,
	movers []*mover.Mover,
) ([]services.Standing, error) {
	loads, err := h.log.FindByTypeAndItem(ctx, activity.TypeLoading, itemID)
	if err != nil {
		return nil, storageError("find loading activity", err)
	}

	entries := make([]*activity.Entry, 0, len(loads))
	visited := make(map[kernel.UUID]struct{})
	for _, load := range loads {
		if _, ok := visited[load.MoverID()]; ok {
			continue
		}
		visited[load.MoverID()] = struct{}{}

		moverEntries, err := h.log.FindByMover(ctx, load.MoverID())
		if err != nil {
			return nil, storageError("find mover activity", err)
		}
		entries = append(entries, moverEntries...)
	}

	return h.ranker.RankByItem(itemID, movers, entries)
}

// generation is read before the activity log so that standings computed from
// a log that misses a later MISSION_ENDED are stored under a generation the
// invalidation has already retired.
func (h GetTopPerformersQueryHandler) generation(ctx context.Context, itemID kernel.UUID) (int64, bool) {
	if h.cache == nil {
		return 0, false
	}

	generation, err := h.cache.Generation(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read leaderboard cache generation",
			"item_id", itemID.String(),
			"error", err)
		return 0, false
	}
	return generation, true
}

func (h GetTopPerformersQueryHandler) cached(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
) ([]ports.Ranking, bool) {
	rankings, found, err := h.cache.Get(ctx, generation, itemID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read cached leaderboard",
			"item_id", itemID.String(),
			"error", err)
		return nil, false
	}
	return rankings, found
}

func (h GetTopPerformersQueryHandler) store(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
	standings []services.Standing,
) {
	rankings := make([]ports.Ranking, 0, len(standings))
	for _, s := range standings {
		rankings = append(rankings, ports.Ranking{MoverID: s.Mover.ID(), Missions: s.Missions})
	}

	if err := h.cache.Set(ctx, generation, itemID, rankings); err != nil {
		h.logger.WarnContext(ctx, "failed to cache leaderboard",
			"item_id", itemID.String(),
			"error", err)
	}
}

func toPerformers(standings []services.Standing) []PerformerView {
	views := make([]PerformerView, 0, len(standings))
	for _, s := range standings {
		views = append(views, PerformerView{Mover: NewMoverView(s.Mover), Missions: s.Missions})
	}
	return views
}

// fromRankings joins cached rows with current mover state. Rows of movers that
// no longer exist are dropped.
func fromRankings(rankings []ports.Ranking, movers []*mover.Mover) []PerformerView {
	byID := make(map[kernel.UUID]*mover.Mover, len(movers))
	for _, m := range movers {
		byID[m.ID()] = m
	}

	views := make([]PerformerView, 0, len(rankings))
	for _, r := range rankings {
		if m, ok := byID[r.MoverID]; ok {
			views = append(views, PerformerView{Mover: NewMoverView(m), Missions: r.Missions})
		}
	}
	return views
}
