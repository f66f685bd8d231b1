package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"artfeed/internal/domain/models"
	"artfeed/internal/storage"
)

type LikeRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewLikeRepository(db *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ToggleLike flips the like of userID on postID and returns the new state
// with a count read inside the same transaction. Toggles by the same user on
// the same post are serialized by a transaction-scoped advisory lock; other
// users never wait on each other.
func (r *LikeRepo) ToggleLike(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	const op = "repository.LikeRepo.ToggleLike"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var exists int64
	err = tx.QueryRow(ctx,
		`SELECT p.id FROM posts p JOIN images i ON i.id = p.image_id WHERE p.id = $1 FOR SHARE OF p`,
		postID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LikeState{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, hashtext($2))`, postID, userID); err != nil {
		return models.LikeState{}, fmt.Errorf("%s: failed to lock: %w", op, err)
	}

	query, args, err := r.sb.Delete("likes").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%s: failed to remove like: %w", op, err)
	}

	liked := false
	if tag.RowsAffected() == 0 {
		query, args, err = r.sb.Insert("likes").
			Columns("post_id", "user_id").
			Values(postID, userID).
			Suffix("ON CONFLICT (post_id, user_id) DO NOTHING").
			ToSql()
		if err != nil {
			return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return models.LikeState{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
			}
			return models.LikeState{}, fmt.Errorf("%s: failed to add like: %w", op, err)
		}
		liked = true
	}

	total, err := r.countLikes(ctx, tx, postID)
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.LikeState{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return models.LikeState{Liked: liked, TotalLikes: total}, nil
}

// GetLikeState reads the like count of a post and whether userID is among
// the likers.
func (r *LikeRepo) GetLikeState(ctx context.Context, postID int64, userID string) (models.LikeState, error) {
	const op = "repository.LikeRepo.GetLikeState"

	query, args, err := r.sb.Select("COUNT(*)").
		Column(squirrel.Expr("COALESCE(BOOL_OR(user_id = ?), false)", userID)).
		From("likes").
		Where(squirrel.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	var state models.LikeState
	if err := r.db.QueryRow(ctx, query, args...).Scan(&state.TotalLikes, &state.Liked); err != nil {
		return models.LikeState{}, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

func (r *LikeRepo) countLikes(ctx context.Context, tx pgx.Tx, postID int64) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("likes").
		Where(squirrel.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w", err)
	}

	return count, nil
}
