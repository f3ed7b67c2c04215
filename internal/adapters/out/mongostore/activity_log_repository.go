package mongostore

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.ActivityLogRepository = (*ActivityLogRepository)(nil)

type activityDoc struct {
	ID          string     `bson:"_id"`
	MoverID     string     `bson:"mover_id"`
	Type        string     `bson:"type"`
	Details     detailsDoc `bson:"details"`
	CreatedAt   time.Time  `bson:"created_at"`
	CreatedAtNS int64      `bson:"created_at_ns"`
}

type detailsDoc struct {
	PreviousState     string   `bson:"previous_state"`
	NewState          string   `bson:"new_state"`
	ItemIDs           []string `bson:"item_ids,omitempty"`
	ItemCount         int      `bson:"item_count"`
	TotalWeight       string   `bson:"total_weight"`
	CompletedMissions *int     `bson:"completed_missions,omitempty"`
}

// ActivityLogRepository appends entries to the "activity_logs" collection.
type ActivityLogRepository struct {
	coll *mongo.Collection
}

func NewActivityLogRepository(db *mongo.Database) *ActivityLogRepository {
	return &ActivityLogRepository{coll: db.Collection(activitiesCollection)}
}

func (r *ActivityLogRepository) Append(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	flat := activity.Flatten(entry.Details())
	_, err := r.coll.InsertOne(ctx, activityDoc{
		ID:      entry.ID().String(),
		MoverID: entry.MoverID().String(),
		Type:    entry.Type().String(),
		Details: detailsDoc{
			PreviousState:     flat.PreviousState,
			NewState:          flat.NewState,
			ItemIDs:           flat.ItemIDs,
			ItemCount:         flat.ItemCount,
			TotalWeight:       flat.TotalWeight,
			CompletedMissions: flat.CompletedMissions,
		},
		CreatedAt:   entry.CreatedAt(),
		CreatedAtNS: entry.CreatedAt().UnixNano(),
	})
	return err
}

func (r *ActivityLogRepository) FindByMover(ctx context.Context, moverID kernel.UUID) ([]*activity.Entry, error) {
	if err := moverID.Validate(); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at_ns", Value: -1}})
	return r.find(ctx, bson.M{"mover_id": moverID.String()}, opts)
}

// FindByTypeAndItem relies on MongoDB matching a scalar against array
// elements: details.item_ids equals itemID when any element does.
func (r *ActivityLogRepository) FindByTypeAndItem(
	ctx context.Context,
	t activity.Type,
	itemID kernel.UUID,
) ([]*activity.Entry, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	filter := bson.M{"type": t.String(), "details.item_ids": itemID.String()}
	opts := options.Find().SetSort(bson.D{{Key: "created_at_ns", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *ActivityLogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*activity.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []activityDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]*activity.Entry, 0, len(docs))
	for _, doc := range docs {
		e, convErr := doc.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (d activityDoc) toDomain() (*activity.Entry, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, err
	}
	moverID, err := kernel.UUIDFromString(d.MoverID)
	if err != nil {
		return nil, err
	}
	t, err := activity.ParseType(d.Type)
	if err != nil {
		return nil, err
	}
	details, err := activity.RestoreDetails(t, activity.FlatDetails{
		PreviousState:     d.Details.PreviousState,
		NewState:          d.Details.NewState,
		ItemIDs:           d.Details.ItemIDs,
		ItemCount:         d.Details.ItemCount,
		TotalWeight:       d.Details.TotalWeight,
		CompletedMissions: d.Details.CompletedMissions,
	})
	if err != nil {
		return nil, err
	}
	return activity.RestoreEntry(id, moverID, details, time.Unix(0, d.CreatedAtNS).UTC())
}
