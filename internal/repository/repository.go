package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"

	redisapp "artfeed/internal/storage/redis"
)

type Repository struct {
	Image   ImageRepository
	Post    PostRepository
	Like    LikeRepository
	Comment CommentRepository
	Profile ProfileCacheRepository
}

func NewRepository(db *pgxpool.Pool, redis *redisapp.Client) *Repository {
	return &Repository{
		Image:   NewImageRepository(db),
		Post:    NewPostRepository(db),
		Like:    NewLikeRepository(db),
		Comment: NewCommentRepository(db),
		Profile: NewProfileCacheRepository(redis),
	}
}
