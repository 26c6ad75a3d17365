package usecase

import (
	"context"
	"time"

	"classifieds/pkg/logger"
	"classifieds/pkg/metrics"
	"classifieds/pkg/queue"
	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/cache"
)

// Clock returns the current time. Use cases normalize it to UTC.
type Clock func() time.Time

const (
	defaultQueryTimeout = 5 * time.Second
	defaultListingTTL   = 30 * 24 * time.Hour
)

type Options struct {
	Clock        Clock
	QueryTimeout time.Duration
	// ListingTTL is the lifetime given to listings approved without an expiry.
	ListingTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = defaultQueryTimeout
	}
	if o.ListingTTL <= 0 {
		o.ListingTTL = defaultListingTTL
	}
	return o
}

func (o Options) now() time.Time {
	return o.Clock().UTC()
}

func (o Options) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.QueryTimeout)
}

// Deps are the optional collaborators shared by the use cases. Any of them
// may be nil.
type Deps struct {
	Cache     cache.ListingCache
	Publisher queue.Publisher
	Metrics   *metrics.Manager
	Logger    *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	return d
}

// emit publishes a lifecycle event. Failures are logged and never returned.
func (d Deps) emit(ctx context.Context, evt entity.LifecycleEvent) {
	if d.Publisher == nil {
		return
	}
	if err := d.Publisher.Publish(ctx, evt.RoutingKey(), evt); err != nil {
		d.Logger.Warn("Failed to publish %s event for listing %d: %v", evt.Type, evt.ListingID, err)
	}
}

func (d Deps) invalidate(ctx context.Context, id uint, slug string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Invalidate(ctx, id, slug); err != nil {
		d.Logger.Warn("Failed to invalidate cached listing %d: %v", id, err)
	}
}
