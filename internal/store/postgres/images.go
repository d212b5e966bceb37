package postgres

import (
	"context"
	"errors"

	"backoffice/internal/domain/image"
	"backoffice/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// imageRepository implements ImageRepository over the images and thumbs
// tables, which share one shape.
type imageRepository struct {
	db *pgxpool.Pool
}

func (r *imageRepository) SaveImage(ctx context.Context, f *image.File) error {
	return r.save(ctx, "images", f)
}

func (r *imageRepository) FindImage(ctx context.Context, id string) (*image.File, error) {
	return r.find(ctx, "images", "image", id)
}

func (r *imageRepository) DeleteImage(ctx context.Context, id string) error {
	return r.delete(ctx, "images", "image", id)
}

func (r *imageRepository) SaveThumb(ctx context.Context, f *image.File) error {
	return r.save(ctx, "thumbs", f)
}

func (r *imageRepository) FindThumb(ctx context.Context, id string) (*image.File, error) {
	return r.find(ctx, "thumbs", "thumb", id)
}

func (r *imageRepository) DeleteThumb(ctx context.Context, id string) error {
	return r.delete(ctx, "thumbs", "thumb", id)
}

// table names below are compile-time constants, never caller input.

func (r *imageRepository) save(ctx context.Context, table string, f *image.File) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO `+table+` (id, ext, size, owner_id, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET ext = $2, size = $3, owner_id = $4`,
		f.ID, f.Ext, f.Size, f.OwnerID, f.UploadedAt)
	return err
}

func (r *imageRepository) find(ctx context.Context, table, entity, id string) (*image.File, error) {
	row := r.db.QueryRow(ctx, `SELECT id, ext, size, owner_id, uploaded_at FROM `+table+` WHERE id = $1`, id)

	var f image.File
	err := row.Scan(&f.ID, &f.Ext, &f.Size, &f.OwnerID, &f.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &repositories.NotFoundError{Entity: entity, Key: id}
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *imageRepository) delete(ctx context.Context, table, entity, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &repositories.NotFoundError{Entity: entity, Key: id}
	}
	return nil
}
