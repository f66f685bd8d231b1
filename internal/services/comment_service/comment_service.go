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
	"artfeed/internal/repository"
	"artfeed/internal/services/guard"
	"artfeed/internal/storage"
)

type VisibilityReader interface {
	GetPostVisibility(ctx context.Context, postID int64) (models.PostVisibility, error)
}

type ProfileResolver interface {
	Resolve(ctx context.Context, userIDs []string) map[string]models.Author
}

type CommentService struct {
	log      *slog.Logger
	posts    VisibilityReader
	comments repository.CommentRepository
	profiles ProfileResolver
}

func NewCommentService(
	log *slog.Logger,
	posts VisibilityReader,
	comments repository.CommentRepository,
	profiles ProfileResolver,
) *CommentService {
	return &CommentService{
		log:      log,
		posts:    posts,
		comments: comments,
		profiles: profiles,
	}
}

// ListComments returns a post's comments newest first with their authors.
func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	const op = "service.CommentService.ListComments"

	comments, err := s.comments.ListComments(ctx, postID)
	if err != nil {
		s.log.Error("failed to list comments", slog.String("op", op), slog.Int64("post_id", postID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.attachAuthors(ctx, comments)

	return comments, nil
}

// AddComment appends a comment to a public post. Any signed-in user may
// comment; ownership is not checked.
func (s *CommentService) AddComment(ctx context.Context, postID int64, userID, content string) (models.Comment, error) {
	const op = "service.CommentService.AddComment"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("post_id", postID),
		slog.String("user_id", userID),
	)

	if userID == "" {
		return models.Comment{}, models.ErrUnauthorized
	}

	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > models.MaxCommentLength {
		return models.Comment{}, models.ErrInvalidContent
	}

	v, err := guard.Find(ctx, func(ctx context.Context) (models.PostVisibility, error) {
		return s.posts.GetPostVisibility(ctx, postID)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Comment{}, err
		}
		log.Error("failed to check post", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := guard.RequirePublic(v); err != nil {
		return models.Comment{}, models.ErrNotFound
	}

	comment, err := s.comments.AddComment(ctx, models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			return models.Comment{}, models.ErrNotFound
		}
		log.Error("failed to add comment", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.CommentsCreatedTotal.Inc()

	comments := []models.Comment{comment}
	s.attachAuthors(ctx, comments)

	log.Info("comment added", slog.Int64("comment_id", comment.ID))
	return comments[0], nil
}

func (s *CommentService) attachAuthors(ctx context.Context, comments []models.Comment) {
	if len(comments) == 0 {
		return
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}

	authors := s.profiles.Resolve(ctx, ids)
	for i := range comments {
		author, ok := authors[comments[i].UserID]
		if !ok {
			author = models.UnknownAuthor(comments[i].UserID)
		}
		comments[i].Author = author
	}
}
