package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"classifieds/services/listing/internal/entity"

	"github.com/redis/go-redis/v9"
)

// ListingCache is a read-through cache for listing detail lookups.
type ListingCache interface {
	Get(ctx context.Context, id uint) (*entity.Listing, bool, error)
	IDBySlug(ctx context.Context, slug string) (uint, bool, error)
	Set(ctx context.Context, listing *entity.Listing) error
	Invalidate(ctx context.Context, id uint, slug string) error
}

type listingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &listingCache{client: client, ttl: ttl}
}

func listingKey(id uint) string {
	return fmt.Sprintf("listing:%d", id)
}

func slugKey(slug string) string {
	return fmt.Sprintf("listing:slug:%s", slug)
}

func (c *listingCache) Get(ctx context.Context, id uint) (*entity.Listing, bool, error) {
	raw, err := c.client.Get(ctx, listingKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached listing: %w", err)
	}

	var listing entity.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		// Unreadable entries are treated as misses and dropped.
		c.client.Del(ctx, listingKey(id))
		return nil, false, nil
	}
	return &listing, true, nil
}

func (c *listingCache) IDBySlug(ctx context.Context, slug string) (uint, bool, error) {
	raw, err := c.client.Get(ctx, slugKey(slug)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cached slug: %w", err)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.client.Del(ctx, slugKey(slug))
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (c *listingCache) Set(ctx context.Context, listing *entity.Listing) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, listingKey(listing.ID), raw, c.ttl)
	if listing.Slug != "" {
		pipe.Set(ctx, slugKey(listing.Slug), strconv.FormatUint(uint64(listing.ID), 10), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	return nil
}

func (c *listingCache) Invalidate(ctx context.Context, id uint, slug string) error {
	keys := []string{listingKey(id)}
	if slug != "" {
		keys = append(keys, slugKey(slug))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing: %w", err)
	}
	return nil
}
