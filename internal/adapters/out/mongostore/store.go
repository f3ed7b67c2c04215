// Package mongostore implements the storage ports on MongoDB.
//
// Items, movers and activity entries live in one collection each, keyed by
// the textual UUID. Weights are stored as Decimal128 so sums read back
// exactly. Activity entries keep their creation instant in nanoseconds next to
// the BSON date, because BSON dates stop at milliseconds and the leaderboard
// compares instants strictly.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	itemsCollection      = "items"
	moversCollection     = "movers"
	activitiesCollection = "activity_logs"

	callTimeout = 5 * time.Second
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories query by. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		itemsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		moversCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
		activitiesCollection: {
			{Keys: bson.D{{Key: "mover_id", Value: 1}, {Key: "created_at_ns", Value: -1}}},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "details.item_ids", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
