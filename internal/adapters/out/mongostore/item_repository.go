package mongostore

import (
	"context"
	"errors"
	"time"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ports.ItemRepository = (*ItemRepository)(nil)

type itemDoc struct {
	ID        string               `bson:"_id"`
	Name      string               `bson:"name"`
	Weight    primitive.Decimal128 `bson:"weight"`
	CreatedAt time.Time            `bson:"created_at"`
}

// ItemRepository stores items in the "items" collection.
type ItemRepository struct {
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{coll: db.Collection(itemsCollection)}
}

func (r *ItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	weight, err := toDecimal128(aggregate.Weight())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	_, err = r.coll.InsertOne(ctx, itemDoc{
		ID:        aggregate.ID().String(),
		Name:      aggregate.Name(),
		Weight:    weight,
		CreatedAt: aggregate.CreatedAt(),
	})
	return err
}

func (r *ItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *ItemRepository) GetAll(ctx context.Context) ([]*item.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *ItemRepository) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	if len(ids) == 0 {
		return []*item.Item{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": kernel.UUIDsToStrings(ids)}})
}

func (r *ItemRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*item.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []itemDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]*item.Item, 0, len(docs))
	for _, doc := range docs {
		i, convErr := doc.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, i)
	}
	return items, nil
}

func (d itemDoc) toDomain() (*item.Item, error) {
	id, err := kernel.UUIDFromString(d.ID)
	if err != nil {
		return nil, err
	}
	weight, err := fromDecimal128(d.Weight)
	if err != nil {
		return nil, err
	}
	return item.RestoreItem(id, d.Name, weight, d.CreatedAt.UTC())
}
