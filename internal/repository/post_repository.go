package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"

	"artfeed/internal/domain/models"
	"artfeed/internal/storage"
)

type PostRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPostRepository(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SharePost publishes an owned private image: the image row is locked, its
// tags replaced, it is flipped public and a post is created, all in one
// transaction.
func (r *PostRepo) SharePost(ctx context.Context, input models.ShareInput) (models.Post, error) {
	const op = "repository.PostRepo.SharePost"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Select("is_public").
		From("images").
		Where(squirrel.Eq{"id": input.ImageID, "user_id": input.UserID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	var isPublic bool
	if err := tx.QueryRow(ctx, query, args...).Scan(&isPublic); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
		}
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}
	if isPublic {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyShared)
	}

	query, args, err = r.sb.Update("images").
		Set("tags", pq.Array(normalizeTags(input.Tags))).
		Set("is_public", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": input.ImageID}).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return models.Post{}, fmt.Errorf("%s: failed to publish image: %w", op, err)
	}

	query, args, err = r.sb.Insert("posts").
		Columns("image_id", "user_id", "title", "description").
		Values(input.ImageID, input.UserID, input.Title, input.Description).
		Suffix("RETURNING id, image_id, user_id, title, COALESCE(description, ''), created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	var post models.Post
	err = tx.QueryRow(ctx, query, args...).Scan(
		&post.ID,
		&post.ImageID,
		&post.UserID,
		&post.Title,
		&post.Description,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyShared)
		}
		return models.Post{}, fmt.Errorf("%s: failed to create post: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Post{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return post, nil
}

// feedSelect is the shared join/aggregate used by the feed and the post
// detail view. An empty viewer id never matches a like.
func (r *PostRepo) feedSelect(viewerID string) squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id",
		"p.image_id",
		"p.user_id",
		"p.title",
		"COALESCE(p.description, '')",
		"i.file_path",
		"i.prompt",
		"COUNT(DISTINCT l.id)",
		"COUNT(DISTINCT c.id)",
	).
		Column(squirrel.Expr(
			"EXISTS (SELECT 1 FROM likes vl WHERE vl.post_id = p.id AND vl.user_id = ?)", viewerID,
		)).
		Column("p.created_at").
		From("posts p").
		InnerJoin("images i ON i.id = p.image_id").
		LeftJoin("likes l ON l.post_id = p.id").
		LeftJoin("comments c ON c.post_id = p.id").
		Where(squirrel.Eq{"i.is_public": true}).
		GroupBy("p.id", "i.id")
}

// GetFeed returns one page of public posts and the total number of public
// posts.
func (r *PostRepo) GetFeed(ctx context.Context, q models.FeedQuery) ([]models.FeedItem, int, error) {
	const op = "repository.PostRepo.GetFeed"

	order := []string{"p.created_at DESC", "p.id DESC"}
	if q.SortBy == models.SortOldest {
		order = []string{"p.created_at ASC", "p.id ASC"}
	}

	query, args, err := r.feedSelect(q.ViewerID).
		OrderBy(order...).
		Limit(uint64(q.Page.Size)).
		Offset(uint64(q.Page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.FeedItem, 0, q.Page.Size)
	for rows.Next() {
		item, err := scanFeedItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	totalCount, err := r.countPublicPosts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return items, totalCount, nil
}

func (r *PostRepo) countPublicPosts(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("posts p").
		InnerJoin("images i ON i.id = p.image_id").
		Where(squirrel.Eq{"i.is_public": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w", err)
	}

	return count, nil
}

func (r *PostRepo) GetPostDetail(ctx context.Context, postID int64, viewerID string) (models.FeedItem, error) {
	const op = "repository.PostRepo.GetPostDetail"

	query, args, err := r.feedSelect(viewerID).
		Where(squirrel.Eq{"p.id": postID}).
		ToSql()
	if err != nil {
		return models.FeedItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanFeedItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FeedItem{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return models.FeedItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (r *PostRepo) GetPostVisibility(ctx context.Context, postID int64) (models.PostVisibility, error) {
	const op = "repository.PostRepo.GetPostVisibility"

	query, args, err := r.sb.Select("p.id", "p.user_id", "i.is_public").
		From("posts p").
		InnerJoin("images i ON i.id = p.image_id").
		Where(squirrel.Eq{"p.id": postID}).
		ToSql()
	if err != nil {
		return models.PostVisibility{}, fmt.Errorf("%s: %w", op, err)
	}

	var v models.PostVisibility
	if err := r.db.QueryRow(ctx, query, args...).Scan(&v.PostID, &v.AuthorID, &v.ImageIsPublic); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PostVisibility{}, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return models.PostVisibility{}, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func scanFeedItem(row pgx.Row) (models.FeedItem, error) {
	var item models.FeedItem
	err := row.Scan(
		&item.PostID,
		&item.ImageID,
		&item.AuthorID,
		&item.Title,
		&item.Description,
		&item.FilePath,
		&item.Prompt,
		&item.LikesCount,
		&item.CommentsCount,
		&item.IsLiked,
		&item.CreatedAt,
	)
	return item, err
}
