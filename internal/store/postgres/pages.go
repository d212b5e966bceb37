package postgres

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
	"backoffice/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pageRepository implements PageRepository with pure data access
type pageRepository struct {
	db *pgxpool.Pool
}

const pageColumns = `id, title, slug, summary, contents, owner_id, active, deleted, created_at, updated_at`

var pageSortColumns = map[string]string{
	"title":     "title",
	"slug":      "slug",
	"createdAt": "created_at",
}

func (r *pageRepository) Insert(ctx context.Context, p *page.Page) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pages (id, title, slug, summary, contents, owner_id, active, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Title, p.Slug, p.Summary, p.Contents, p.OwnerID, p.Active, p.Deleted, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *pageRepository) FindByID(ctx context.Context, id string) (*page.Page, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	p, err := scanPageRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &repositories.NotFoundError{Entity: "page", Key: id}
	}
	return p, err
}

func (r *pageRepository) List(ctx context.Context, q listing.Query) (listing.Result[*page.Page], error) {
	q.Normalize()
	res := listing.Result[*page.Page]{Data: []*page.Page{}}

	where := `NOT deleted`
	var args []any
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where += ` AND (title ILIKE $1 OR slug ILIKE $1)`
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pages WHERE `+where, args...).Scan(&res.Count); err != nil {
		return res, err
	}

	col, ok := pageSortColumns[q.SortField]
	if !ok {
		col = "title"
	}
	dir := "ASC"
	if q.SortDir == listing.Desc {
		dir = "DESC"
	}

	pageArgs := append(args, q.Limit, q.Skip)
	sql := fmt.Sprintf(`SELECT %s FROM pages WHERE %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		pageColumns, where, col, dir, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, sql, pageArgs...)
	if err != nil {
		return res, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPageRow(rows)
		if err != nil {
			return res, err
		}
		res.Data = append(res.Data, p)
	}
	return res, rows.Err()
}

func (r *pageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE pages SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &repositories.NotFoundError{Entity: "page", Key: id}
	}
	return nil
}

func scanPageRow(row pgx.Row) (*page.Page, error) {
	var p page.Page
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Contents, &p.OwnerID,
		&p.Active, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
