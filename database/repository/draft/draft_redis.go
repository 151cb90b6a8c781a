package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"autosave/models"
	"autosave/utils"

	"github.com/go-redis/redis/v8"
)

// RedisDraftRepo stores drafts as JSON values with a TTL.
type RedisDraftRepo struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRedisDraftRepo(client *redis.Client, ttl, lockTTL time.Duration) *RedisDraftRepo {
	return &RedisDraftRepo{client: client, ttl: ttl, lockTTL: lockTTL}
}

var _ DraftRepository = (*RedisDraftRepo)(nil)

func (r *RedisDraftRepo) Save(ctx context.Context, session *models.DraftSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal draft session: %w", err)
	}
	if err := r.client.Set(ctx, utils.DraftCachePrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft session: %w", err)
	}
	return nil
}

func (r *RedisDraftRepo) Get(ctx context.Context, id string) (*models.DraftSession, error) {
	data, err := r.client.Get(ctx, utils.DraftCachePrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft session: %w", err)
	}
	var session models.DraftSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse draft session: %w", err)
	}
	return &session, nil
}

func (r *RedisDraftRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, utils.DraftCachePrefix+id, utils.SubmitLockPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete draft session: %w", err)
	}
	return nil
}

func (r *RedisDraftRepo) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, utils.SubmitLockPrefix+id, "1", r.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (r *RedisDraftRepo) ReleaseSubmitLock(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, utils.SubmitLockPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}
