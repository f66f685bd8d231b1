package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"artfeed/internal/domain/models"
	"artfeed/internal/storage"
)

type CommentRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CommentRepo) AddComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	const op = "repository.CommentRepo.AddComment"

	query, args, err := r.sb.Insert("comments").
		Columns("post_id", "user_id", "content").
		Values(comment.PostID, comment.UserID, comment.Content).
		Suffix("RETURNING id, post_id, user_id, content, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.Comment
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&created.ID,
		&created.PostID,
		&created.UserID,
		&created.Content,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return models.Comment{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// ListComments returns every comment on a post, newest first.
func (r *CommentRepo) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	const op = "repository.CommentRepo.ListComments"

	query, args, err := r.sb.Select("id", "post_id", "user_id", "content", "created_at", "updated_at").
		From("comments").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}
