package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"FoodOrder/models"

	"github.com/redis/go-redis/v9"
)

const (
	restaurantsKey = "restaurants"
	generationKey  = "restaurants:generation"
)

// RedisCatalog keeps every active restaurant as a JSON member of a sorted
// set scored by id, so ZRange returns them in id order.
type RedisCatalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalog(rdb *redis.Client, ttl time.Duration) *RedisCatalog {
	return &RedisCatalog{rdb: rdb, ttl: ttl}
}

func (r *RedisCatalog) Restaurants(ctx context.Context) ([]models.Restaurant, bool, error) {
	members, err := r.rdb.ZRange(ctx, restaurantsKey, 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	restaurants := make([]models.Restaurant, 0, len(members))
	for _, member := range members {
		var restaurant models.Restaurant
		if err := json.Unmarshal([]byte(member), &restaurant); err != nil {
			return nil, false, fmt.Errorf("decode cached restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, true, nil
}

func (r *RedisCatalog) Generation(ctx context.Context) (int64, error) {
	generation, err := r.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// StoreRestaurants replaces the cached listing unless Invalidate ran since
// generation was read.
func (r *RedisCatalog) StoreRestaurants(ctx context.Context, generation int64, restaurants []models.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	members := make([]redis.Z, 0, len(restaurants))
	for _, restaurant := range restaurants {
		restaurantJSON, err := json.Marshal(restaurant)
		if err != nil {
			return fmt.Errorf("encode restaurant %d: %w", restaurant.ID, err)
		}
		members = append(members, redis.Z{
			Score:  float64(restaurant.ID),
			Member: restaurantJSON,
		})
	}

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, restaurantsKey)
			pipe.ZAdd(ctx, restaurantsKey, members...)
			if r.ttl > 0 {
				pipe.Expire(ctx, restaurantsKey, r.ttl)
			}
			return nil
		})
		return err
	}, generationKey)
	// lost the race against Invalidate; the next read refills
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (r *RedisCatalog) Invalidate(ctx context.Context) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, restaurantsKey)
		return nil
	})
	return err
}
