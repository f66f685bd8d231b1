package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/metrics"
	"artfeed/internal/repository"
	"artfeed/internal/services/guard"
	"artfeed/internal/storage"
)

type VisibilityReader interface {
	GetPostVisibility(ctx context.Context, postID int64) (models.PostVisibility, error)
}

type LikeService struct {
	log   *slog.Logger
	posts VisibilityReader
	likes repository.LikeRepository
}

func NewLikeService(log *slog.Logger, posts VisibilityReader, likes repository.LikeRepository) *LikeService {
	return &LikeService{
		log:   log,
		posts: posts,
		likes: likes,
	}
}

// ToggleLike flips the caller's like on a public post.
func (s *LikeService) ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	const op = "service.LikeService.ToggleLike"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
		slog.String("user_id", userID),
	)

	if userID == "" {
		return models.LikeState{}, models.ErrUnauthorized
	}

	if err := s.requirePublicPost(ctx, postID); err != nil {
		return models.LikeState{}, err
	}

	state, err := s.likes.ToggleLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return models.LikeState{}, models.ErrNotFound
		}
		log.Error("failed to toggle like", sl.Err(err))
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	result := "unliked"
	if state.Liked {
		result = "liked"
	}
	metrics.LikeTogglesTotal.WithLabelValues(result).Inc()

	log.Info("like toggled", slog.Bool("liked", state.Liked), slog.Int("likes", state.TotalLikes))
	return state, nil
}

func (s *LikeService) GetLikeStatus(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	const op = "service.LikeService.GetLikeStatus"

	if userID == "" {
		return models.LikeState{}, models.ErrUnauthorized
	}

	state, err := s.likes.GetLikeState(ctx, postID, userID)
	if err != nil {
		s.log.Error("failed to read like state", slog.String("op", op), slog.Int64("post_id", postID), sl.Err(err))
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

// requirePublicPost reports a private post as missing so its existence does
// not leak.
func (s *LikeService) requirePublicPost(ctx context.Context, postID int64) error {
	v, err := guard.Find(ctx, func(ctx context.Context) (models.PostVisibility, error) {
		return s.posts.GetPostVisibility(ctx, postID)
	})
	if err != nil {
		return err
	}

	if _, err := guard.RequirePublic(v); err != nil {
		return models.ErrNotFound
	}

	return nil
}
