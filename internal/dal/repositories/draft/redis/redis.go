package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
)

const keyPrefix = "booking:draft:"

type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DraftRedisRepository keeps wizard drafts as JSON values that expire after ttl.
type DraftRedisRepository struct {
	client client
	ttl    time.Duration
}

// NewDraftRedisRepository creates a new draft repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func NewDraftRedisRepository(client client, ttl time.Duration) *DraftRedisRepository {
	return &DraftRedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func key(id string) string {
	return keyPrefix + id
}

// Save stores the draft and resets its expiration.
func (r *DraftRedisRepository) Save(ctx context.Context, d *wizard.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.client.Set(ctx, key(d.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get loads a draft. Missing or expired drafts return apperr.ErrNotFound.
func (r *DraftRedisRepository) Get(ctx context.Context, id string) (*wizard.Draft, error) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: booking draft %s", apperr.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d wizard.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &d, nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (r *DraftRedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}
