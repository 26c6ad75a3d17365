package usecase

import (
	"context"
	"errors"
	"time"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"
)

const expireBatchSize = 100

type LifecycleUseCase interface {
	Approve(ctx context.Context, id uint) (bool, error)
	Reject(ctx context.Context, id uint, reason string) (bool, error)
	SetFeatured(ctx context.Context, id uint, featured bool, until *time.Time) (bool, error)
	ExpireOld(ctx context.Context) (int64, error)
	ExpireFeatured(ctx context.Context) (int64, error)
	Renew(ctx context.Context, id uint, days int) (bool, error)
	RenewOwned(ctx context.Context, id uint, ownerID string, days int) (bool, error)
	MarkAsSold(ctx context.Context, id uint, ownerID string) (bool, error)
	Pause(ctx context.Context, id uint, ownerID string) (bool, error)
	Resume(ctx context.Context, id uint, ownerID string) (bool, error)
}

type lifecycleUseCase struct {
	listingRepo persistent.ListingRepository
	deps        Deps
	opts        Options
}

func NewLifecycleUseCase(listingRepo persistent.ListingRepository, deps Deps, opts Options) LifecycleUseCase {
	return &lifecycleUseCase{
		listingRepo: listingRepo,
		deps:        deps.withDefaults(),
		opts:        opts.withDefaults(),
	}
}

type transition struct {
	from    entity.Status
	to      entity.Status
	event   entity.EventType
	ownerID string
	extra   map[string]interface{}
}

// apply runs a single-source-state transition as one conditional UPDATE.
func (uc *lifecycleUseCase) apply(ctx context.Context, id uint, t transition) (bool, error) {
	now := uc.opts.now()
	updates := map[string]interface{}{
		"status":     string(t.to),
		"updated_at": now,
	}
	for k, v := range t.extra {
		updates[k] = v
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	ok, err := uc.listingRepo.Transition(ctx, id, []entity.Status{t.from}, t.ownerID, updates)
	if err != nil {
		uc.deps.Logger.Error("Failed to move listing %d from %s to %s: %v", id, t.from, t.to, err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	uc.deps.invalidate(ctx, id, "")
	uc.deps.Metrics.Transition(string(t.to))
	uc.deps.emit(ctx, entity.LifecycleEvent{
		Type:           t.event,
		ListingID:      id,
		PreviousStatus: t.from,
		NewStatus:      t.to,
		OccurredAt:     now,
	})
	uc.deps.Logger.Info("Listing %d moved from %s to %s", id, t.from, t.to)
	return true, nil
}

func (uc *lifecycleUseCase) Approve(ctx context.Context, id uint) (bool, error) {
	now := uc.opts.now()
	return uc.apply(ctx, id, transition{
		from:  entity.StatusPending,
		to:    entity.StatusPublished,
		event: entity.EventApproved,
		extra: map[string]interface{}{
			"approved_at": now,
			"expires_at":  persistent.KeepOrSet("expires_at", now.Add(uc.opts.ListingTTL)),
		},
	})
}

func (uc *lifecycleUseCase) Reject(ctx context.Context, id uint, reason string) (bool, error) {
	return uc.apply(ctx, id, transition{
		from:  entity.StatusPending,
		to:    entity.StatusRejected,
		event: entity.EventRejected,
		extra: map[string]interface{}{"rejection_reason": reason},
	})
}

func (uc *lifecycleUseCase) MarkAsSold(ctx context.Context, id uint, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, nil
	}
	return uc.apply(ctx, id, transition{
		from:    entity.StatusPublished,
		to:      entity.StatusSold,
		event:   entity.EventSold,
		ownerID: ownerID,
	})
}

func (uc *lifecycleUseCase) Pause(ctx context.Context, id uint, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, nil
	}
	return uc.apply(ctx, id, transition{
		from:    entity.StatusPublished,
		to:      entity.StatusPaused,
		event:   entity.EventPaused,
		ownerID: ownerID,
	})
}

func (uc *lifecycleUseCase) Resume(ctx context.Context, id uint, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, nil
	}
	return uc.apply(ctx, id, transition{
		from:    entity.StatusPaused,
		to:      entity.StatusPublished,
		event:   entity.EventResumed,
		ownerID: ownerID,
	})
}

func (uc *lifecycleUseCase) SetFeatured(ctx context.Context, id uint, featured bool, until *time.Time) (bool, error) {
	updates := map[string]interface{}{
		"featured":       featured,
		"featured_until": nil,
		"updated_at":     uc.opts.now(),
	}
	if featured && until != nil {
		updates["featured_until"] = until.UTC()
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	ok, err := uc.listingRepo.Transition(ctx, id, nil, "", updates)
	if err != nil {
		return false, err
	}
	if ok {
		uc.deps.invalidate(ctx, id, "")
	}
	return ok, nil
}

// ownerRenewable are the states an owner may renew from. Pending and
// rejected listings only leave through moderation.
var ownerRenewable = []entity.Status{entity.StatusPublished, entity.StatusExpired}

// Renew republishes a listing from any state and pushes its expiry out.
// It is the moderator override; owners go through RenewOwned.
func (uc *lifecycleUseCase) Renew(ctx context.Context, id uint, days int) (bool, error) {
	return uc.renew(ctx, id, nil, "", days)
}

// RenewOwned extends a published or expired listing belonging to ownerID.
func (uc *lifecycleUseCase) RenewOwned(ctx context.Context, id uint, ownerID string, days int) (bool, error) {
	if ownerID == "" {
		return false, nil
	}
	return uc.renew(ctx, id, ownerRenewable, ownerID, days)
}

func (uc *lifecycleUseCase) renew(ctx context.Context, id uint, from []entity.Status, ownerID string, days int) (bool, error) {
	if days <= 0 {
		return false, entity.NewValidationError("days", "days must be positive")
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	current, err := uc.listingRepo.GetByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := uc.opts.now()
	ok, err := uc.listingRepo.Transition(ctx, id, from, ownerID, map[string]interface{}{
		"status":           string(entity.StatusPublished),
		"expires_at":       now.AddDate(0, 0, days),
		"approved_at":      persistent.KeepOrSet("approved_at", now),
		"rejection_reason": nil,
		"updated_at":       now,
	})
	if err != nil {
		uc.deps.Logger.Error("Failed to renew listing %d: %v", id, err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	uc.deps.invalidate(ctx, id, "")
	uc.deps.Metrics.Transition(string(entity.StatusPublished))
	uc.deps.emit(ctx, entity.LifecycleEvent{
		Type:           entity.EventRenewed,
		ListingID:      id,
		PreviousStatus: current.Status,
		NewStatus:      entity.StatusPublished,
		OccurredAt:     now,
	})
	return true, nil
}

// ExpireOld moves overdue published listings to expired in id-ordered
// batches. On failure it returns how many rows were already changed.
func (uc *lifecycleUseCase) ExpireOld(ctx context.Context) (int64, error) {
	now := uc.opts.now()
	var total int64

	for {
		bctx, cancel := uc.opts.bound(ctx)
		ids, err := uc.listingRepo.ExpireBatch(bctx, now, expireBatchSize)
		if err != nil {
			cancel()
			uc.deps.Logger.Error("Expiry sweep stopped after %d listings: %v", total, err)
			return total, err
		}

		for _, id := range ids {
			uc.deps.invalidate(bctx, id, "")
			uc.deps.emit(bctx, entity.LifecycleEvent{
				Type:           entity.EventExpired,
				ListingID:      id,
				PreviousStatus: entity.StatusPublished,
				NewStatus:      entity.StatusExpired,
				OccurredAt:     now,
			})
		}
		cancel()

		total += int64(len(ids))
		uc.deps.Metrics.Expired(int64(len(ids)))

		if len(ids) == 0 {
			break
		}
	}

	if total > 0 {
		uc.deps.Logger.Info("Expired %d listings", total)
	}
	return total, nil
}

func (uc *lifecycleUseCase) ExpireFeatured(ctx context.Context) (int64, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	n, err := uc.listingRepo.ClearExpiredFeatured(ctx, uc.opts.now())
	if err != nil {
		uc.deps.Logger.Error("Failed to clear expired featured flags: %v", err)
		return 0, err
	}
	return n, nil
}
