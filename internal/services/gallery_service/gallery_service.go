package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/metrics"
	"artfeed/internal/repository"
	"artfeed/internal/services/guard"
	"artfeed/internal/storage"
	"artfeed/internal/storage/blobstorage"
)

const MaxUploadSize = 10 << 20

var allowedContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// SaveImageInput describes a generated image the owner wants to keep.
type SaveImageInput struct {
	OwnerID     string
	Prompt      string
	ArtStyle    string
	ColorTone   string
	Tags        []string
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

type UpdateImageInput struct {
	Tags     []string
	IsPublic *bool
}

type GalleryService struct {
	log    *slog.Logger
	images repository.ImageRepository
	blobs  blobstorage.BlobStorage
	styles models.StyleCatalog
}

func NewGalleryService(
	log *slog.Logger,
	images repository.ImageRepository,
	blobs blobstorage.BlobStorage,
	styles models.StyleCatalog,
) *GalleryService {
	return &GalleryService{
		log:    log,
		images: images,
		blobs:  blobs,
		styles: styles,
	}
}

// SaveImage uploads the file and records it as a private image. The blob is
// removed again if the row cannot be written.
func (s *GalleryService) SaveImage(ctx context.Context, in SaveImageInput) (models.Image, error) {
	const op = "service.GalleryService.SaveImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", in.OwnerID),
	)

	if in.OwnerID == "" {
		return models.Image{}, models.ErrUnauthorized
	}

	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" || utf8.RuneCountInString(prompt) > models.MaxPromptLength {
		return models.Image{}, models.ErrInvalidInput
	}
	if in.ArtStyle != "" && !s.styles.HasArtStyle(in.ArtStyle) {
		return models.Image{}, models.ErrInvalidInput
	}
	if in.ColorTone != "" && !s.styles.HasColorTone(in.ColorTone) {
		return models.Image{}, models.ErrInvalidInput
	}
	if _, ok := allowedContentTypes[in.ContentType]; !ok {
		return models.Image{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, storage.ErrInvalidFileType)
	}
	if in.Size <= 0 || in.Size > MaxUploadSize {
		return models.Image{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, storage.ErrFileTooLarge)
	}

	tags, err := models.NormalizeTags(in.Tags)
	if err != nil {
		return models.Image{}, err
	}

	key := blobstorage.ImageKey(in.OwnerID, in.Filename)
	if err := s.blobs.Put(ctx, key, in.File, in.Size, in.ContentType); err != nil {
		log.Error("failed to store blob", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	image, err := s.images.CreateImage(ctx, models.Image{
		UserID:    in.OwnerID,
		FilePath:  key,
		Prompt:    prompt,
		ArtStyle:  in.ArtStyle,
		ColorTone: in.ColorTone,
		Tags:      tags,
		IsPublic:  false,
	})
	if err != nil {
		log.Error("failed to create image", sl.Err(err))
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Error("failed to remove orphaned blob", slog.String("key", key), sl.Err(delErr))
		}
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ImagesSavedTotal.Inc()

	log.Info("image saved", slog.Int64("image_id", image.ID))
	return image, nil
}

// ListImages returns the owner's images matching filter.
func (s *GalleryService) ListImages(ctx context.Context, filter models.ImageFilter) (models.ImagePage, error) {
	const op = "service.GalleryService.ListImages"

	if filter.OwnerID == "" {
		return models.ImagePage{}, models.ErrUnauthorized
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return models.ImagePage{}, models.ErrInvalidInput
	}

	images, total, err := s.images.ListImages(ctx, filter)
	if err != nil {
		s.log.Error("failed to list images", slog.String("op", op), slog.String("owner_id", filter.OwnerID), sl.Err(err))
		return models.ImagePage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.ImagePage{
		Images:     images,
		TotalCount: total,
		HasMore:    filter.Page.HasMore(total),
	}, nil
}

// UpdateImage replaces the tags of an owned image. Visibility only changes
// through sharing, so any attempt to flip it here is rejected.
func (s *GalleryService) UpdateImage(ctx context.Context, ownerID string, imageID int64, in UpdateImageInput) (models.Image, error) {
	const op = "service.GalleryService.UpdateImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID),
		slog.Int64("image_id", imageID),
	)

	image, err := guard.RequireOwner(ctx, s.findImage(imageID), ownerID)
	if err != nil {
		return models.Image{}, s.guardErr(log, op, err)
	}

	if in.IsPublic != nil && *in.IsPublic != image.IsPublic {
		log.Warn("visibility change rejected")
		return models.Image{}, models.ErrInvalidInput
	}

	tags, err := models.NormalizeTags(in.Tags)
	if err != nil {
		return models.Image{}, err
	}

	updated, err := s.images.UpdateImageTags(ctx, imageID, tags)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Image{}, models.ErrNotFound
		}
		log.Error("failed to update image", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image updated")
	return updated, nil
}

// DeleteImage removes an owned image together with its post, likes and
// comments. The blob is removed afterwards; a failure there is only logged.
func (s *GalleryService) DeleteImage(ctx context.Context, ownerID string, imageID int64) error {
	const op = "service.GalleryService.DeleteImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID),
		slog.Int64("image_id", imageID),
	)

	image, err := guard.RequireOwner(ctx, s.findImage(imageID), ownerID)
	if err != nil {
		return s.guardErr(log, op, err)
	}

	if err := s.images.DeleteImage(ctx, imageID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ErrNotFound
		}
		log.Error("failed to delete image", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.blobs.Delete(ctx, image.FilePath); err != nil {
		log.Warn("failed to delete blob", slog.String("key", image.FilePath), sl.Err(err))
	}

	log.Info("image deleted")
	return nil
}

func (s *GalleryService) findImage(id int64) func(context.Context) (models.Image, error) {
	return func(ctx context.Context) (models.Image, error) {
		return s.images.GetImageByID(ctx, id)
	}
}

func (s *GalleryService) guardErr(log *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrForbidden):
		return err
	}
	log.Error("failed to load image", sl.Err(err))
	return fmt.Errorf("%s: %w", op, err)
}
