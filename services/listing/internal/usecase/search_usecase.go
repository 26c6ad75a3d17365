package usecase

import (
	"context"
	"math"
	"sort"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SearchUseCase interface {
	Search(ctx context.Context, filter entity.SearchFilter, limit, offset int) (*entity.SearchResult, error)
	Count(ctx context.Context, filter entity.SearchFilter) (int64, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]*entity.Listing, error)
}

type searchUseCase struct {
	searchRepo persistent.SearchRepository
	deps       Deps
	opts       Options
}

func NewSearchUseCase(searchRepo persistent.SearchRepository, deps Deps, opts Options) SearchUseCase {
	return &searchUseCase{
		searchRepo: searchRepo,
		deps:       deps.withDefaults(),
		opts:       opts.withDefaults(),
	}
}

func validateFilter(filter entity.SearchFilter) error {
	if !filter.Sort.Valid() {
		return entity.NewValidationError("sort", "unknown sort key")
	}
	if filter.Condition != nil && !filter.Condition.Valid() {
		return entity.NewValidationError("condition", "unknown condition")
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return entity.NewValidationError("price_min", "price_min exceeds price_max")
	}
	return nil
}

func (uc *searchUseCase) Search(ctx context.Context, filter entity.SearchFilter, limit, offset int) (*entity.SearchResult, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	listings, err := uc.searchRepo.Search(ctx, filter, limit, offset)
	if err != nil {
		uc.deps.Logger.Error("Search failed: %v", err)
		return nil, err
	}
	total, err := uc.searchRepo.Count(ctx, filter)
	if err != nil {
		uc.deps.Logger.Error("Search count failed: %v", err)
		return nil, err
	}

	return &entity.SearchResult{
		Listings: listings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (uc *searchUseCase) Count(ctx context.Context, filter entity.SearchFilter) (int64, error) {
	if err := validateFilter(filter); err != nil {
		return 0, err
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.searchRepo.Count(ctx, filter)
}

func (uc *searchUseCase) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]*entity.Listing, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, entity.NewValidationError("lat", "latitude must be within [-90, 90]")
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, entity.NewValidationError("lng", "longitude must be within [-180, 180]")
	}
	if math.IsNaN(radiusKm) || radiusKm <= 0 {
		return nil, entity.NewValidationError("radius", "radius must be positive")
	}
	limit, _ = normalizePage(limit, 0)

	box := boundingBox(lat, lng, radiusKm)

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	candidates, err := uc.searchRepo.WithinBounds(ctx, persistent.BoundingBox{
		MinLat:        box.minLat,
		MaxLat:        box.maxLat,
		MinLng:        box.minLng,
		MaxLng:        box.maxLng,
		SkipLongitude: box.wrap,
	})
	if err != nil {
		uc.deps.Logger.Error("Nearby search failed: %v", err)
		return nil, err
	}

	matches := make([]*entity.Listing, 0, len(candidates))
	for _, l := range candidates {
		if !l.HasCoordinates() {
			continue
		}
		d := GreatCircleKm(lat, lng, *l.Latitude, *l.Longitude)
		if d > radiusKm {
			continue
		}
		l.DistanceKm = &d
		matches = append(matches, l)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}
		return a.ID > b.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
