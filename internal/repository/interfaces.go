package repository

import (
	"context"
	"time"

	"artfeed/internal/domain/models"
)

type ImageRepository interface {
	CreateImage(ctx context.Context, image models.Image) (models.Image, error)
	GetImageByID(ctx context.Context, id int64) (models.Image, error)
	ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int, error)
	UpdateImageTags(ctx context.Context, id int64, tags []string) (models.Image, error)
	DeleteImage(ctx context.Context, id int64) error
}

type PostRepository interface {
	SharePost(ctx context.Context, input models.ShareInput) (models.Post, error)
	GetFeed(ctx context.Context, query models.FeedQuery) ([]models.FeedItem, int, error)
	GetPostDetail(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error)
	GetPostVisibility(ctx context.Context, postID int64) (models.PostVisibility, error)
}

type LikeRepository interface {
	ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error)
	GetLikeState(ctx context.Context, postID int64, userID string) (models.LikeState, error)
}

type CommentRepository interface {
	AddComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]models.Comment, error)
}

type ProfileCacheRepository interface {
	GetProfiles(ctx context.Context, userIDs []string) (map[string]models.Author, error)
	SaveProfiles(ctx context.Context, profiles []models.Author, ttl time.Duration) error
}
