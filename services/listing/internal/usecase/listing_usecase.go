package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"

	"github.com/gosimple/slug"
)

const (
	slugSuffixLen   = 6
	slugMaxBaseLen  = 80
	slugMaxAttempts = 5
	slugAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
)

type ListingUseCase interface {
	Create(ctx context.Context, input entity.ListingInput) (*entity.Listing, error)
	Update(ctx context.Context, id uint, patch entity.ListingPatch) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Get(ctx context.Context, id uint) (*entity.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	ListByOwner(ctx context.Context, userID string, status *entity.Status, limit, offset int) ([]*entity.Listing, int64, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error)
}

type listingUseCase struct {
	listingRepo persistent.ListingRepository
	deps        Deps
	opts        Options
}

func NewListingUseCase(listingRepo persistent.ListingRepository, deps Deps, opts Options) ListingUseCase {
	return &listingUseCase{
		listingRepo: listingRepo,
		deps:        deps.withDefaults(),
		opts:        opts.withDefaults(),
	}
}

func (uc *listingUseCase) Create(ctx context.Context, input entity.ListingInput) (*entity.Listing, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	listing := &entity.Listing{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Condition:     input.Condition,
		Price:         input.Price,
		PriceType:     input.PriceType,
		Currency:      strings.ToUpper(input.Currency),
		City:          input.City,
		State:         input.State,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Phone:         input.Phone,
		WhatsApp:      input.WhatsApp,
		Email:         input.Email,
		UserID:        input.UserID,
		Status:        input.Status,
		ExpiresAt:     utcPtr(input.ExpiresAt),
		CustomFields:  input.CustomFields,
	}
	if listing.Status == "" {
		listing.Status = entity.StatusPending
	}
	if listing.Condition == "" {
		listing.Condition = entity.ConditionUsed
	}
	if listing.PriceType == "" {
		listing.PriceType = entity.PriceFixed
	}
	if listing.Currency == "" {
		listing.Currency = "USD"
	}
	if listing.CustomFields == nil {
		listing.CustomFields = entity.CustomFields{}
	}

	base := slugBase(listing.Title)
	var err error
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		var suffix string
		suffix, err = randomSuffix(slugSuffixLen)
		if err != nil {
			return nil, err
		}
		listing.Slug = base + "-" + suffix

		err = uc.listingRepo.Create(ctx, listing)
		if !errors.Is(err, entity.ErrConflict) {
			break
		}
		uc.deps.Logger.Warn("Slug collision on %s, retrying", listing.Slug)
	}
	if err != nil {
		uc.deps.Logger.Error("Failed to create listing: %v", err)
		return nil, err
	}

	uc.deps.Metrics.ListingCreated()
	uc.deps.emit(ctx, entity.LifecycleEvent{
		Type:       entity.EventCreated,
		ListingID:  listing.ID,
		NewStatus:  listing.Status,
		OccurredAt: uc.opts.now(),
	})

	uc.deps.Logger.Info("Listing %d created by %s with slug %s", listing.ID, listing.UserID, listing.Slug)
	return listing, nil
}

func (uc *listingUseCase) Update(ctx context.Context, id uint, patch entity.ListingPatch) (bool, error) {
	if patch.IsEmpty() {
		return true, nil
	}
	updates, err := patchUpdates(patch)
	if err != nil {
		return false, err
	}
	updates["updated_at"] = uc.opts.now()

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	ok, err := uc.listingRepo.Update(ctx, id, updates)
	if err != nil {
		uc.deps.Logger.Error("Failed to update listing %d: %v", id, err)
		return false, err
	}
	if ok {
		uc.deps.invalidate(ctx, id, "")
	}
	return ok, nil
}

func (uc *listingUseCase) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	var slugValue string
	if existing, err := uc.listingRepo.GetByID(ctx, id); err == nil {
		slugValue = existing.Slug
	} else if !errors.Is(err, entity.ErrNotFound) {
		return false, err
	}

	ok, err := uc.listingRepo.Delete(ctx, id)
	if err != nil {
		uc.deps.Logger.Error("Failed to delete listing %d: %v", id, err)
		return false, err
	}
	uc.deps.invalidate(ctx, id, slugValue)
	if ok {
		uc.deps.Logger.Info("Listing %d deleted", id)
	}
	return ok, nil
}

func (uc *listingUseCase) Get(ctx context.Context, id uint) (*entity.Listing, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	if uc.deps.Cache != nil {
		cached, hit, err := uc.deps.Cache.Get(ctx, id)
		if err != nil {
			uc.deps.Logger.Warn("Listing cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.remember(ctx, listing)
	return listing, nil
}

func (uc *listingUseCase) GetBySlug(ctx context.Context, slugValue string) (*entity.Listing, error) {
	if uc.deps.Cache != nil {
		bctx, cancel := uc.opts.bound(ctx)
		id, hit, err := uc.deps.Cache.IDBySlug(bctx, slugValue)
		cancel()
		if err != nil {
			uc.deps.Logger.Warn("Listing cache read failed: %v", err)
		} else if hit {
			return uc.Get(ctx, id)
		}
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	listing, err := uc.listingRepo.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	uc.remember(ctx, listing)
	return listing, nil
}

func (uc *listingUseCase) ListByOwner(ctx context.Context, userID string, status *entity.Status, limit, offset int) ([]*entity.Listing, int64, error) {
	if userID == "" {
		return nil, 0, entity.NewValidationError("user_id", "owner is required")
	}
	if status != nil && !status.Valid() {
		return nil, 0, entity.NewValidationError("status", "unknown status")
	}
	limit, offset = normalizePage(limit, offset)

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.listingRepo.List(ctx, userID, status, limit, offset)
}

// ListPending is the moderation queue across all owners.
func (uc *listingUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	limit, offset = normalizePage(limit, offset)
	status := entity.StatusPending

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.listingRepo.List(ctx, "", &status, limit, offset)
}

func (uc *listingUseCase) remember(ctx context.Context, listing *entity.Listing) {
	if uc.deps.Cache == nil {
		return
	}
	if err := uc.deps.Cache.Set(ctx, listing); err != nil {
		uc.deps.Logger.Warn("Failed to cache listing %d: %v", listing.ID, err)
	}
}

func validateInput(input entity.ListingInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return entity.NewValidationError("title", "title is required")
	}
	if input.UserID == "" {
		return entity.NewValidationError("user_id", "owner is required")
	}
	if input.Status != "" && !input.Status.Valid() {
		return entity.NewValidationError("status", "unknown status")
	}
	if input.Condition != "" && !input.Condition.Valid() {
		return entity.NewValidationError("condition", "unknown condition")
	}
	if input.PriceType != "" && !input.PriceType.Valid() {
		return entity.NewValidationError("price_type", "unknown price type")
	}
	if input.Price != nil && *input.Price < 0 {
		return entity.NewValidationError("price", "price cannot be negative")
	}
	if input.Currency != "" && len(input.Currency) != 3 {
		return entity.NewValidationError("currency", "currency must be a 3-letter code")
	}
	return validateCoordinates(input.Latitude, input.Longitude)
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return entity.NewValidationError("coordinates", "latitude and longitude must be set together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return entity.NewValidationError("latitude", "latitude must be within [-90, 90]")
	}
	if *lng < -180 || *lng > 180 {
		return entity.NewValidationError("longitude", "longitude must be within [-180, 180]")
	}
	return nil
}

// patchUpdates turns a patch into a column map. Owner, slug, created_at and
// views are never part of it.
func patchUpdates(p entity.ListingPatch) (map[string]interface{}, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, entity.NewValidationError("title", "title cannot be empty")
	}
	if p.Condition != nil && !p.Condition.Valid() {
		return nil, entity.NewValidationError("condition", "unknown condition")
	}
	if p.PriceType != nil && !p.PriceType.Valid() {
		return nil, entity.NewValidationError("price_type", "unknown price type")
	}
	if p.Price != nil && *p.Price < 0 {
		return nil, entity.NewValidationError("price", "price cannot be negative")
	}
	if p.Currency != nil && len(*p.Currency) != 3 {
		return nil, entity.NewValidationError("currency", "currency must be a 3-letter code")
	}
	if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
		return nil, err
	}
	switch {
	case p.ClearPrice && p.Price != nil:
		return nil, entity.NewValidationError("price", "price cannot be set and cleared at once")
	case p.ClearSubcategory && p.SubcategoryID != nil:
		return nil, entity.NewValidationError("subcategory_id", "subcategory cannot be set and cleared at once")
	case p.ClearCoordinates && p.Latitude != nil:
		return nil, entity.NewValidationError("coordinates", "coordinates cannot be set and cleared at once")
	case p.ClearExpiresAt && p.ExpiresAt != nil:
		return nil, entity.NewValidationError("expires_at", "expiry cannot be set and cleared at once")
	}

	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}

	if p.Title != nil {
		updates["title"] = strings.TrimSpace(*p.Title)
	}
	setString("description", p.Description)
	setString("city", p.City)
	setString("state", p.State)
	setString("country", p.Country)
	setString("postal_code", p.PostalCode)
	setString("phone", p.Phone)
	setString("whatsapp", p.WhatsApp)
	setString("email", p.Email)
	if p.Currency != nil {
		updates["currency"] = strings.ToUpper(*p.Currency)
	}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.SubcategoryID != nil {
		updates["subcategory_id"] = *p.SubcategoryID
	}
	if p.Condition != nil {
		updates["condition"] = string(*p.Condition)
	}
	if p.PriceType != nil {
		updates["price_type"] = string(*p.PriceType)
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Latitude != nil {
		updates["latitude"] = *p.Latitude
		updates["longitude"] = *p.Longitude
	}
	if p.ExpiresAt != nil {
		updates["expires_at"] = p.ExpiresAt.UTC()
	}
	if p.CustomFields != nil {
		updates["custom_fields"] = p.CustomFields
	}
	if p.ClearPrice {
		updates["price"] = nil
	}
	if p.ClearSubcategory {
		updates["subcategory_id"] = nil
	}
	if p.ClearCoordinates {
		updates["latitude"] = nil
		updates["longitude"] = nil
	}
	if p.ClearExpiresAt {
		updates["expires_at"] = nil
	}

	return updates, nil
}

func slugBase(title string) string {
	base := slug.Make(title)
	if len(base) > slugMaxBaseLen {
		base = strings.TrimRight(base[:slugMaxBaseLen], "-")
	}
	if base == "" {
		base = "listing"
	}
	return base
}

func randomSuffix(n int) (string, error) {
	max := big.NewInt(int64(len(slugAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[idx.Int64()]
	}
	return string(b), nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
