package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	redis_models "Recluta/models/redis"
	redis_utils "Recluta/services/redis/utils"
	"Recluta/services/store"

	recruit_constants "Recluta/constants/recruit"

	"github.com/redis/go-redis/v9"
)

// txRetries bounds how often a WATCHed membership update is retried when a
// concurrent writer invalidates the transaction.
const txRetries = 10

// RedisClient handles Redis operations. It implements store.PanelStore.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{client: client}
}

// SaveRoster stores a published panel roster in Redis
// Key format: "panel:{id}"
// TTL: 3 days, absolute. Membership changes never refresh it.
func (rc *RedisClient) SaveRoster(ctx context.Context, roster *redis_models.Roster) error {
	key := redis_utils.FormatPanelKey(roster.PanelID)

	pipe := rc.client.TxPipeline()
	pipe.HSet(ctx, key, roster.FieldMap())
	pipe.Expire(ctx, key, recruit_constants.RosterTTLSeconds*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error saving roster %s: %v", roster.PanelID, err)
	}
	return nil
}

// GetRoster retrieves a panel roster from Redis
// Key format: "panel:{id}"
// Returns store.ErrRosterNotFound when the key is gone (deleted or TTL'd out).
func (rc *RedisClient) GetRoster(ctx context.Context, panelID string) (*redis_models.Roster, error) {
	key := redis_utils.FormatPanelKey(panelID)
	fields, err := rc.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting roster %s: %v", panelID, err)
	}
	// HGETALL on a missing key yields an empty map, not redis.Nil.
	if len(fields) == 0 {
		return nil, store.ErrRosterNotFound
	}
	return redis_models.RosterFromFields(panelID, fields)
}

// DeleteRoster removes a panel roster from Redis
// Key format: "panel:{id}"
func (rc *RedisClient) DeleteRoster(ctx context.Context, panelID string) error {
	key := redis_utils.FormatPanelKey(panelID)
	deleted, err := rc.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("error deleting roster %s: %v", panelID, err)
	}
	if deleted == 0 {
		return store.ErrRosterNotFound
	}
	return nil
}

// UpdateJoined applies a membership change as an optimistic WATCH/MULTI
// transaction on the panel key. The mutate callback runs against a fresh
// snapshot; if another writer touches the key before EXEC, the whole
// read-mutate-write is retried. Callback errors abort without writing and
// pass through unchanged.
func (rc *RedisClient) UpdateJoined(ctx context.Context, panelID string, mutate store.MutateJoined) error {
	key := redis_utils.FormatPanelKey(panelID)

	txn := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("error reading roster %s: %v", panelID, err)
		}
		if len(fields) == 0 {
			return store.ErrRosterNotFound
		}
		roster, err := redis_models.RosterFromFields(panelID, fields)
		if err != nil {
			return err
		}
		joined, err := mutate(roster)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, redis_models.FieldJoined, redis_models.JoinUserIDs(joined))
			return nil
		})
		return err
	}

	for i := 0; i < txRetries; i++ {
		err := rc.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("roster %s: membership update not applied after %d retries", panelID, txRetries)
}

// SetEntryPanel stores the message ID of the latest entry panel post.
// No TTL; the pointer is replaced or deleted explicitly.
func (rc *RedisClient) SetEntryPanel(ctx context.Context, messageID string) error {
	if err := rc.client.Set(ctx, redis_utils.EntryPanelKey, messageID, 0).Err(); err != nil {
		return fmt.Errorf("error saving entry panel pointer: %v", err)
	}
	return nil
}

// GetEntryPanel retrieves the message ID of the latest entry panel post.
func (rc *RedisClient) GetEntryPanel(ctx context.Context) (string, error) {
	id, err := rc.client.Get(ctx, redis_utils.EntryPanelKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrEntryPanelNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error getting entry panel pointer: %v", err)
	}
	return id, nil
}

// DeleteEntryPanel drops the entry panel pointer.
func (rc *RedisClient) DeleteEntryPanel(ctx context.Context) error {
	deleted, err := rc.client.Del(ctx, redis_utils.EntryPanelKey).Result()
	if err != nil {
		return fmt.Errorf("error deleting entry panel pointer: %v", err)
	}
	if deleted == 0 {
		return store.ErrEntryPanelNotFound
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
