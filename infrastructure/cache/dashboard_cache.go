package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"rating-dashboard/domain/dto"
	"rating-dashboard/domain/repository"
)

const (
	keyPrefix   = "rating-dashboard:"
	tableKey    = keyPrefix + "table"
	sequenceKey = keyPrefix + "seq:"
)

// DashboardCache shares request sequencing and the rendered table across
// replicas through redis.
type DashboardCache struct {
	client *redis.Client
}

var (
	_ repository.ISequencer      = (*DashboardCache)(nil)
	_ repository.IDashboardStore = (*DashboardCache)(nil)
)

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

// Next increments and returns the view's sequence.
func (c *DashboardCache) Next(ctx context.Context, view string) (uint64, error) {
	n, err := c.client.Incr(ctx, sequenceKey+view).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %s: %w", view, err)
	}
	return uint64(n), nil
}

// Latest returns the last sequence issued for the view, zero if none.
func (c *DashboardCache) Latest(ctx context.Context, view string) (uint64, error) {
	n, err := c.client.Get(ctx, sequenceKey+view).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", view, err)
	}
	return n, nil
}

// Save replaces the stored table.
func (c *DashboardCache) Save(ctx context.Context, state *dto.TableState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, tableKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save dashboard table: %w", err)
	}
	return nil
}

// Load returns the stored table, nil when nothing was saved yet.
func (c *DashboardCache) Load(ctx context.Context) (*dto.TableState, error) {
	raw, err := c.client.Get(ctx, tableKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard table: %w", err)
	}
	var state dto.TableState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
