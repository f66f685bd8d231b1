package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/storage"
)

type FeedReader interface {
	GetFeed(ctx context.Context, query models.FeedQuery) ([]models.FeedItem, int, error)
	GetPostDetail(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error)
}

// ProfileResolver never fails; unknown ids come back with a placeholder name.
type ProfileResolver interface {
	Resolve(ctx context.Context, userIDs []string) map[string]models.Author
}

type FeedService struct {
	log      *slog.Logger
	posts    FeedReader
	profiles ProfileResolver
}

func NewFeedService(log *slog.Logger, posts FeedReader, profiles ProfileResolver) *FeedService {
	return &FeedService{
		log:      log,
		posts:    posts,
		profiles: profiles,
	}
}

// GetFeed returns one page of public posts, newest first unless asked
// otherwise. viewerID may be empty.
func (s *FeedService) GetFeed(ctx context.Context, query models.FeedQuery) (models.Feed, error) {
	const op = "service.FeedService.GetFeed"
	log := s.log.With(
		slog.String("op", op),
		slog.Int("page", query.Page.Number),
		slog.Int("page_size", query.Page.Size),
	)

	items, total, err := s.posts.GetFeed(ctx, query)
	if err != nil {
		log.Error("failed to load feed", sl.Err(err))
		return models.Feed{}, fmt.Errorf("%s: %w", op, err)
	}

	s.attachAuthors(ctx, items)

	log.Debug("feed loaded", slog.Int("items", len(items)), slog.Int("total", total))
	return models.Feed{
		Items:      items,
		TotalCount: total,
		HasMore:    query.Page.HasMore(total),
	}, nil
}

func (s *FeedService) GetPost(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error) {
	const op = "service.FeedService.GetPost"

	item, err := s.posts.GetPostDetail(ctx, postID, viewerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.FeedItem{}, models.ErrNotFound
		}
		s.log.Error("failed to load post", slog.String("op", op), slog.Int64("post_id", postID), sl.Err(err))
		return models.FeedItem{}, fmt.Errorf("%s: %w", op, err)
	}

	items := []models.FeedItem{item}
	s.attachAuthors(ctx, items)

	return items[0], nil
}

func (s *FeedService) attachAuthors(ctx context.Context, items []models.FeedItem) {
	if len(items) == 0 {
		return
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.AuthorID)
	}

	authors := s.profiles.Resolve(ctx, ids)
	for i := range items {
		author, ok := authors[items[i].AuthorID]
		if !ok {
			author = models.UnknownAuthor(items[i].AuthorID)
		}
		items[i].Author = author
	}
}
