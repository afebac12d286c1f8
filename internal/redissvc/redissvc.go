package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagKeyPrefix = "cache:tag:"

type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func tagKey(tag string) string {
	return tagKeyPrefix + tag
}

// GetJSON decodes the value stored under key into dest. It reports false on a miss.
func (a *RedisService) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := a.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key for ttl and registers the key with each tag so
// InvalidateTag can drop it later.
func (a *RedisService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	_, err = a.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagKey(tag), key)
			pipe.Expire(ctx, tagKey(tag), ttl)
		}
		return nil
	})
	return err
}

// InvalidateTag deletes every key registered under tag.
func (a *RedisService) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := a.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}
	keys = append(keys, tagKey(tag))
	return a.rdb.Del(ctx, keys...).Err()
}
