package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"

	"github.com/google/uuid"
)

// MediaStore stores uploaded image bytes and hands back a public URL.
type MediaStore interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	SortOrder   int
	IsPrimary   bool
}

type ImageUseCase interface {
	AddImage(ctx context.Context, listingID uint, url string, order int, isPrimary bool) (*entity.ListingImage, error)
	UploadImage(ctx context.Context, listingID uint, upload ImageUpload) (*entity.ListingImage, error)
	GetImages(ctx context.Context, listingID uint) ([]entity.ListingImage, error)
	DeleteImage(ctx context.Context, imageID uint) (bool, error)
	SetPrimary(ctx context.Context, listingID, imageID uint) (bool, error)
}

type imageUseCase struct {
	imageRepo   persistent.ImageRepository
	listingRepo persistent.ListingRepository
	media       MediaStore
	deps        Deps
	opts        Options
}

func NewImageUseCase(imageRepo persistent.ImageRepository, listingRepo persistent.ListingRepository, media MediaStore, deps Deps, opts Options) ImageUseCase {
	return &imageUseCase{
		imageRepo:   imageRepo,
		listingRepo: listingRepo,
		media:       media,
		deps:        deps.withDefaults(),
		opts:        opts.withDefaults(),
	}
}

func (uc *imageUseCase) AddImage(ctx context.Context, listingID uint, url string, order int, isPrimary bool) (*entity.ListingImage, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, entity.NewValidationError("url", "image url is required")
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	exists, err := uc.listingRepo.Exists(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entity.ErrNotFound
	}

	image := &entity.ListingImage{
		ListingID: listingID,
		URL:       url,
		SortOrder: order,
		IsPrimary: isPrimary,
	}
	if err := uc.imageRepo.Add(ctx, image); err != nil {
		uc.deps.Logger.Error("Failed to add image to listing %d: %v", listingID, err)
		return nil, err
	}

	uc.deps.invalidate(ctx, listingID, "")
	return image, nil
}

func (uc *imageUseCase) UploadImage(ctx context.Context, listingID uint, upload ImageUpload) (*entity.ListingImage, error) {
	if uc.media == nil {
		return nil, errors.New("media storage is not configured")
	}
	if upload.Body == nil {
		return nil, entity.NewValidationError("file", "file is required")
	}
	if upload.ContentType != "" && !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, entity.NewValidationError("file", "only image uploads are accepted")
	}

	bctx, cancel := uc.opts.bound(ctx)
	exists, err := uc.listingRepo.Exists(bctx, listingID)
	cancel()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, entity.ErrNotFound
	}

	key := fmt.Sprintf("listings/%d/%s%s", listingID, uuid.New().String(), strings.ToLower(path.Ext(upload.Filename)))
	url, err := uc.media.UploadFile(ctx, key, upload.Body, upload.ContentType)
	if err != nil {
		uc.deps.Logger.Error("Failed to upload image for listing %d: %v", listingID, err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image, err := uc.AddImage(ctx, listingID, url, upload.SortOrder, upload.IsPrimary)
	if err != nil {
		if delErr := uc.media.DeleteFile(ctx, key); delErr != nil {
			uc.deps.Logger.Warn("Failed to remove orphaned upload %s: %v", key, delErr)
		}
		return nil, err
	}
	return image, nil
}

func (uc *imageUseCase) GetImages(ctx context.Context, listingID uint) ([]entity.ListingImage, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.imageRepo.ListByListing(ctx, listingID)
}

func (uc *imageUseCase) DeleteImage(ctx context.Context, imageID uint) (bool, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	image, err := uc.imageRepo.Get(ctx, imageID)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	ok, err := uc.imageRepo.Delete(ctx, imageID)
	if err != nil {
		return false, err
	}
	uc.deps.invalidate(ctx, image.ListingID, "")
	return ok, nil
}

func (uc *imageUseCase) SetPrimary(ctx context.Context, listingID, imageID uint) (bool, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	ok, err := uc.imageRepo.SetPrimary(ctx, listingID, imageID)
	if err != nil {
		return false, err
	}
	if ok {
		uc.deps.invalidate(ctx, listingID, "")
	}
	return ok, nil
}
