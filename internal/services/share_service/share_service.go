package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/metrics"
	"artfeed/internal/storage"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
)

type PostSharer interface {
	SharePost(ctx context.Context, input models.ShareInput) (models.Post, error)
}

type ShareService struct {
	log   *slog.Logger
	posts PostSharer
}

func NewShareService(log *slog.Logger, posts PostSharer) *ShareService {
	return &ShareService{
		log:   log,
		posts: posts,
	}
}

// SharePost publishes one of the caller's private images as a post.
// Ownership and existence are checked together inside the storage
// transaction, so a foreign image is reported as not found.
func (s *ShareService) SharePost(ctx context.Context, input models.ShareInput) (models.Post, error) {
	const op = "service.ShareService.SharePost"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("image_id", input.ImageID),
		slog.String("user_id", input.UserID),
	)

	if input.UserID == "" {
		return models.Post{}, models.ErrUnauthorized
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if input.ImageID <= 0 ||
		input.Title == "" ||
		utf8.RuneCountInString(input.Title) > maxTitleLength ||
		utf8.RuneCountInString(input.Description) > maxDescriptionLength {
		return models.Post{}, models.ErrInvalidInput
	}

	tags, err := models.NormalizeTags(input.Tags)
	if err != nil {
		return models.Post{}, err
	}
	input.Tags = tags

	post, err := s.posts.SharePost(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrImageNotFound):
			log.Warn("image not found or not owned")
			return models.Post{}, models.ErrNotFound
		case errors.Is(err, storage.ErrAlreadyShared):
			log.Warn("image already shared")
			return models.Post{}, models.ErrAlreadyShared
		}
		log.Error("failed to share image", sl.Err(err))
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.PostsSharedTotal.Inc()

	log.Info("image shared", slog.Int64("post_id", post.ID))
	return post, nil
}
