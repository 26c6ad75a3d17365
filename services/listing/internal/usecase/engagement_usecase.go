package usecase

import (
	"context"
	"strings"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"
)

type EngagementUseCase interface {
	RecordView(ctx context.Context, listingID uint, userID, ip string) (bool, error)
	AddFavorite(ctx context.Context, listingID uint, userID string) (bool, error)
	RemoveFavorite(ctx context.Context, listingID uint, userID string) (bool, error)
	IsFavorite(ctx context.Context, listingID uint, userID string) (bool, error)
	GetUserFavorites(ctx context.Context, userID string, limit int) ([]*entity.Listing, error)
	GetUserAdvertStats(ctx context.Context, userID string) (*entity.AdvertStats, error)
	FavoriteCount(ctx context.Context, listingID uint) (int64, error)
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	deps           Deps
	opts           Options
}

func NewEngagementUseCase(engagementRepo persistent.EngagementRepository, deps Deps, opts Options) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo: engagementRepo,
		deps:           deps.withDefaults(),
		opts:           opts.withDefaults(),
	}
}

// ViewerIdentity is the dedup identity of a viewer: the user id when known,
// otherwise the client address.
func ViewerIdentity(userID, ip string) string {
	if userID != "" {
		return "u:" + userID
	}
	if ip != "" {
		return "ip:" + ip
	}
	return ""
}

func (uc *engagementUseCase) RecordView(ctx context.Context, listingID uint, userID, ip string) (bool, error) {
	userID = strings.TrimSpace(userID)
	ip = strings.TrimSpace(ip)
	viewer := ViewerIdentity(userID, ip)
	if viewer == "" {
		return false, entity.NewValidationError("viewer", "user id or ip is required")
	}

	now := uc.opts.now()
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	counted, err := uc.engagementRepo.RecordView(ctx, &entity.ViewEvent{
		ListingID: listingID,
		Viewer:    viewer,
		ViewDate:  now.Format("2006-01-02"),
		UserID:    userID,
		IP:        ip,
		CreatedAt: now,
	})
	if err != nil {
		uc.deps.Logger.Error("Failed to record view on listing %d: %v", listingID, err)
		return false, err
	}
	if counted {
		uc.deps.Metrics.ViewCounted()
		uc.deps.invalidate(ctx, listingID, "")
	}
	return counted, nil
}

func (uc *engagementUseCase) AddFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	if userID == "" {
		return false, entity.NewValidationError("user_id", "user id is required")
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.AddFavorite(ctx, userID, listingID)
}

func (uc *engagementUseCase) RemoveFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.RemoveFavorite(ctx, userID, listingID)
}

func (uc *engagementUseCase) IsFavorite(ctx context.Context, listingID uint, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.IsFavorite(ctx, userID, listingID)
}

func (uc *engagementUseCase) GetUserFavorites(ctx context.Context, userID string, limit int) ([]*entity.Listing, error) {
	limit, _ = normalizePage(limit, 0)

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.ListFavoriteListings(ctx, userID, limit)
}

func (uc *engagementUseCase) GetUserAdvertStats(ctx context.Context, userID string) (*entity.AdvertStats, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.UserStats(ctx, userID)
}

func (uc *engagementUseCase) FavoriteCount(ctx context.Context, listingID uint) (int64, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.engagementRepo.FavoriteCount(ctx, listingID)
}
