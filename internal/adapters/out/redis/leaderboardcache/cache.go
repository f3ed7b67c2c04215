// Package leaderboardcache keeps item-filtered leaderboards in Redis.
//
// Key layout:
//
//	<prefix>leaderboard:gen                  => current generation (INCR counter)
//	<prefix>leaderboard:<gen>:item:<itemID>  => JSON array of {moverId, missions}
//
// Entries expire after the configured TTL. Invalidate increments the
// generation whenever a mission ends, which orphans every older entry, and
// then deletes the cached entries. A late Set for an old generation lands on
// a key nobody reads and expires with its TTL.
package leaderboardcache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.LeaderboardCache = (*RedisLeaderboardCache)(nil)

const (
	defaultPrefix = "magicmover:"
	scanBatch     = 100
)

type rankingPayload struct {
	MoverID  string `json:"moverId"`
	Missions int    `json:"missions"`
}

// RedisLeaderboardCache implements ports.LeaderboardCache with go-redis.
type RedisLeaderboardCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLeaderboardCache uses "magicmover:" when prefix is empty. A zero
// ttl stores entries without expiry.
func NewRedisLeaderboardCache(client *redis.Client, prefix string, ttl time.Duration) *RedisLeaderboardCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisLeaderboardCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisLeaderboardCache) Generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func (c *RedisLeaderboardCache) Get(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
) ([]ports.Ranking, bool, error) {
	raw, err := c.client.Get(ctx, c.key(generation, itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload []rankingPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return nil, false, err
	}

	rankings := make([]ports.Ranking, 0, len(payload))
	for _, p := range payload {
		moverID, parseErr := kernel.UUIDFromString(p.MoverID)
		if parseErr != nil {
			return nil, false, parseErr
		}
		rankings = append(rankings, ports.Ranking{MoverID: moverID, Missions: p.Missions})
	}
	return rankings, true, nil
}

func (c *RedisLeaderboardCache) Set(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
	rankings []ports.Ranking,
) error {
	payload := make([]rankingPayload, 0, len(rankings))
	for _, r := range rankings {
		payload = append(payload, rankingPayload{MoverID: r.MoverID.String(), Missions: r.Missions})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(generation, itemID), raw, c.ttl).Err()
}

// Invalidate advances the generation, then deletes the leaderboard entries
// under the prefix. SCAN keeps the server responsive when many items are
// cached. Entries are already unreachable once the INCR succeeds, so a failed
// cleanup only leaves garbage for the TTL to collect.
func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, c.prefix+"leaderboard:*:item:*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisLeaderboardCache) generationKey() string {
	return c.prefix + "leaderboard:gen"
}

func (c *RedisLeaderboardCache) key(generation int64, itemID kernel.UUID) string {
	return c.prefix + "leaderboard:" + strconv.FormatInt(generation, 10) + ":item:" + itemID.String()
}
