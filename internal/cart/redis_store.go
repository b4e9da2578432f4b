package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Lua script for a capped increment - the read, cap and write must not
// interleave with another add to the same line
var capAddScript = redis.NewScript(`
-- KEYS[1] = cart hash
-- ARGV[1] = listing_id
-- ARGV[2] = quantity
-- ARGV[3] = limit

local current = tonumber(redis.call("HGET", KEYS[1], ARGV[1]) or "0")
local next = current + tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
if next > limit then
    next = limit
end

redis.call("HSET", KEYS[1], ARGV[1], next)
return next
`)

// redisStore keeps the cart in one hash of listing id -> quantity.
type redisStore struct {
	redis *redis.Client
	key   string
}

func NewRedisStore(client *redis.Client, key string) Store {
	return &redisStore{redis: client, key: key}
}

// PreloadScript loads the add script so the first request can use EVALSHA.
func PreloadScript(ctx context.Context, client *redis.Client) error {
	if err := capAddScript.Load(ctx, client).Err(); err != nil {
		return fmt.Errorf("failed to load cart script: %w", err)
	}
	return nil
}

func (s *redisStore) Add(ctx context.Context, listingID, quantity, limit int) (int, error) {
	result, err := capAddScript.Run(ctx, s.redis, []string{s.key}, listingID, quantity, limit).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to add cart item: %w", err)
	}
	return result, nil
}

func (s *redisStore) Items(ctx context.Context) ([]Item, error) {
	lines, err := s.redis.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	items := make([]Item, 0, len(lines))
	for field, value := range lines {
		id, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		items = append(items, Item{ListingID: id, Quantity: qty})
	}
	sortItems(items)
	return items, nil
}

func (s *redisStore) Remove(ctx context.Context, listingID int) error {
	if err := s.redis.HDel(ctx, s.key, strconv.Itoa(listingID)).Err(); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
