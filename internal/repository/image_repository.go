package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"

	"artfeed/internal/domain/models"
	"artfeed/internal/storage"
)

var imageColumns = []string{
	"id",
	"user_id",
	"file_path",
	"prompt",
	"art_style",
	"color_tone",
	"tags",
	"is_public",
	"created_at",
	"updated_at",
}

type ImageRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewImageRepository(db *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateImage inserts a private image and returns the stored row.
func (r *ImageRepo) CreateImage(ctx context.Context, image models.Image) (models.Image, error) {
	const op = "repository.ImageRepo.CreateImage"

	query, args, err := r.sb.Insert("images").
		Columns(
			"user_id",
			"file_path",
			"prompt",
			"art_style",
			"color_tone",
			"tags",
			"is_public",
		).
		Values(
			image.UserID,
			image.FilePath,
			image.Prompt,
			image.ArtStyle,
			image.ColorTone,
			pq.Array(normalizeTags(image.Tags)),
			image.IsPublic,
		).
		Suffix("RETURNING " + joinColumns(imageColumns)).
		ToSql()
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ImageRepo) GetImageByID(ctx context.Context, id int64) (models.Image, error) {
	const op = "repository.ImageRepo.GetImageByID"

	query, args, err := r.sb.Select(imageColumns...).
		From("images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	image, err := scanImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
		}
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	return image, nil
}

// ListImages returns one page of the owner's images and the total number of
// images matching the filter.
func (r *ImageRepo) ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int, error) {
	const op = "repository.ImageRepo.ListImages"

	where := squirrel.And{squirrel.Eq{"user_id": filter.OwnerID}}

	if filter.ArtStyle != "" {
		where = append(where, squirrel.Eq{"art_style": filter.ArtStyle})
	}
	if filter.ColorTone != "" {
		where = append(where, squirrel.Eq{"color_tone": filter.ColorTone})
	}
	if filter.From != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filter.To})
	}
	if filter.PublicOnly {
		where = append(where, squirrel.Eq{"is_public": true})
	}
	if len(filter.Tags) > 0 {
		// any of the given tags
		where = append(where, squirrel.Expr("tags && ?", pq.Array(filter.Tags)))
	}

	totalCount, err := r.countImages(ctx, where)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	order := []string{"created_at DESC", "id DESC"}
	if filter.SortBy == models.SortOldest {
		order = []string{"created_at ASC", "id ASC"}
	}

	query, args, err := r.sb.Select(imageColumns...).
		From("images").
		Where(where).
		OrderBy(order...).
		Limit(uint64(filter.Page.Size)).
		Offset(uint64(filter.Page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	images := make([]models.Image, 0, filter.Page.Size)
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return images, totalCount, nil
}

func (r *ImageRepo) countImages(ctx context.Context, where squirrel.Sqlizer) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("images").
		Where(where).
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

// UpdateImageTags replaces the tag set of an image.
func (r *ImageRepo) UpdateImageTags(ctx context.Context, id int64, tags []string) (models.Image, error) {
	const op = "repository.ImageRepo.UpdateImageTags"

	query, args, err := r.sb.Update("images").
		Set("tags", pq.Array(normalizeTags(tags))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(imageColumns)).
		ToSql()
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	image, err := scanImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Image{}, fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
		}
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	return image, nil
}

// DeleteImage removes the image row; its post, likes and comments go with it
// through ON DELETE CASCADE.
func (r *ImageRepo) DeleteImage(ctx context.Context, id int64) error {
	const op = "repository.ImageRepo.DeleteImage"

	query, args, err := r.sb.Delete("images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
	}

	return nil
}

func scanImage(row pgx.Row) (models.Image, error) {
	var image models.Image
	err := row.Scan(
		&image.ID,
		&image.UserID,
		&image.FilePath,
		&image.Prompt,
		&image.ArtStyle,
		&image.ColorTone,
		&image.Tags,
		&image.IsPublic,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	if image.Tags == nil {
		image.Tags = []string{}
	}
	return image, err
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
