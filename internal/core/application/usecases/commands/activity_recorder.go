package commands

import (
	"context"
	"log/slog"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
)

// ActivityRecorder appends activity entries after a mover transition has been
// committed. A failed append is logged and never undoes the transition.
//
// When a mission ends the cached leaderboards are dropped, because item
// standings only change on MISSION_ENDED entries.
type ActivityRecorder struct {
	log    ports.ActivityLogRepository
	cache  ports.LeaderboardCache
	logger *slog.Logger
}

// NewActivityRecorder creates a recorder. cache may be nil when leaderboards are not cached.
func NewActivityRecorder(
	log ports.ActivityLogRepository,
	cache ports.LeaderboardCache,
	logger *slog.Logger,
) *ActivityRecorder {
	return &ActivityRecorder{
		log:    log,
		cache:  cache,
		logger: logger.With("component", "activity-recorder"),
	}
}

// Record builds the entry for change and appends it. The returned entry is nil
// when the append failed.
func (r *ActivityRecorder) Record(ctx context.Context, change mover.Change) *activity.Entry {
	details, err := activity.DetailsFromChange(change)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to describe mover transition",
			"mover_id", change.MoverID.String(),
			"action", change.Action.String(),
			"error", err)
		return nil
	}

	entry, err := activity.NewEntry(kernel.NewUUID(), change.MoverID, details, change.At)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to build activity entry",
			"mover_id", change.MoverID.String(),
			"type", details.Type().String(),
			"error", err)
		return nil
	}

	if err = r.log.Append(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to append activity entry",
			"mover_id", change.MoverID.String(),
			"type", entry.Type().String(),
			"error", err)
		return nil
	}

	if entry.Type() == activity.TypeMissionEnded && r.cache != nil {
		if err = r.cache.Invalidate(ctx); err != nil {
			r.logger.WarnContext(ctx, "failed to invalidate leaderboard cache",
				"mover_id", change.MoverID.String(),
				"error", err)
		}
	}

	return entry
}
