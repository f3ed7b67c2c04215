package mongostore

import (
	"context"
	"errors"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.MoverRepository = (*MoverRepository)(nil)

type moverDoc struct {
	ID                string               `bson:"_id"`
	Name              string               `bson:"name"`
	WeightLimit       primitive.Decimal128 `bson:"weight_limit"`
	CurrentWeight     primitive.Decimal128 `bson:"current_weight"`
	State             string               `bson:"state"`
	Items             []string             `bson:"items"`
	CompletedMissions int                  `bson:"completed_missions"`
	Version           int64                `bson:"version"`
	CreatedAt         time.Time            `bson:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at"`
}

// MoverRepository stores each mover as one document, cargo included, so a
// guarded UpdateOne is the whole compare-and-swap.
type MoverRepository struct {
	coll *mongo.Collection
}

func NewMoverRepository(db *mongo.Database) *MoverRepository {
	return &MoverRepository{coll: db.Collection(moversCollection)}
}

func (r *MoverRepository) Add(ctx context.Context, aggregate *mover.Mover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	doc, err := moverToDoc(aggregate)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

func (r *MoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var doc moverDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("mover", id.String())
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *MoverRepository) GetAll(ctx context.Context) ([]*mover.Mover, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []moverDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	movers := make([]*mover.Mover, 0, len(docs))
	for _, doc := range docs {
		m, convErr := doc.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		movers = append(movers, m)
	}
	return movers, nil
}

// UpdateIfVersion replaces the document only while its version still equals
// expectedVersion. MatchedCount == 0 covers both a stale version and a
// missing mover.
func (r *MoverRepository) UpdateIfVersion(ctx context.Context, aggregate *mover.Mover, expectedVersion int64) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}
	doc, err := moverToDoc(aggregate)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":               doc.Name,
			"weight_limit":       doc.WeightLimit,
			"current_weight":     doc.CurrentWeight,
			"state":              doc.State,
			"items":              doc.Items,
			"completed_missions": doc.CompletedMissions,
			"version":            doc.Version,
			"updated_at":         doc.UpdatedAt,
		},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID, "version": expectedVersion}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func moverToDoc(m *mover.Mover) (moverDoc, error) {
	limit, err := toDecimal128(m.WeightLimit())
	if err != nil {
		return moverDoc{}, err
	}
	current, err := toDecimal128(m.CurrentWeight())
	if err != nil {
		return moverDoc{}, err
	}

	return moverDoc{
		ID:                m.ID().String(),
		Name:              m.Name(),
		WeightLimit:       limit,
		CurrentWeight:     current,
		State:             m.State().String(),
		Items:             kernel.UUIDsToStrings(m.Items()),
		CompletedMissions: m.CompletedMissions(),
		Version:           m.Version(),
		CreatedAt:         m.CreatedAt(),
		UpdatedAt:         m.UpdatedAt(),
	}, nil
}

func (d moverDoc) toDomain() (*mover.Mover, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, err
	}
	limit, err := fromDecimal128(d.WeightLimit)
	if err != nil {
		return nil, err
	}
	current, err := fromDecimal128(d.CurrentWeight)
	if err != nil {
		return nil, err
	}
	state, err := mover.ParseState(d.State)
	if err != nil {
		return nil, err
	}
	items, err := kernel.UUIDsFromStrings(d.Items)
	if err != nil {
		return nil, err
	}

	return mover.RestoreMover(
		id, d.Name, limit, current, state,
		items, d.CompletedMissions, d.Version, d.CreatedAt.UTC(), d.UpdatedAt.UTC(),
	)
}
