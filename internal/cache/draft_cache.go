package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// DraftCache keeps the in-progress wizard state of each user, one entry per tier.
type DraftCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewDraftCache creates a new DraftCache whose entries expire after ttl.
func NewDraftCache(redis *RedisClient, ttl time.Duration) *DraftCache {
	return &DraftCache{redis: redis, ttl: ttl}
}

func (c *DraftCache) key(tier models.Tier, userID string) string {
	return fmt.Sprintf("draft:%s:%s", tier, userID)
}

// Save stores draft for userID, replacing any previous one and resetting the TTL.
func (c *DraftCache) Save(ctx context.Context, userID string, draft *models.Draft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return c.redis.Set(ctx, c.key(draft.Tier, userID), b, c.ttl)
}

// Get returns the saved draft, or utils.ErrDraftNotFound.
func (c *DraftCache) Get(ctx context.Context, userID string, tier models.Tier) (*models.Draft, error) {
	b, err := c.redis.Get(ctx, c.key(tier, userID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, utils.ErrDraftNotFound
		}
		return nil, err
	}
	var draft models.Draft
	if err := json.Unmarshal(b, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete discards the saved draft, or returns utils.ErrDraftNotFound.
func (c *DraftCache) Delete(ctx context.Context, userID string, tier models.Tier) error {
	n, err := c.redis.Delete(ctx, c.key(tier, userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrDraftNotFound
	}
	return nil
}
