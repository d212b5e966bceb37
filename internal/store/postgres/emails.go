package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain/email"
	"backoffice/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// emailRepository implements EmailRepository with pure data access
type emailRepository struct {
	db *pgxpool.Pool
}

const emailColumns = `id, title, heading, summary, contents, owner_id, active, deleted, created_at, updated_at`

func (r *emailRepository) Insert(ctx context.Context, e *email.Email) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO emails (id, title, heading, summary, contents, owner_id, active, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.Title, e.Heading, e.Summary, e.Contents, e.OwnerID, e.Active, e.Deleted, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *emailRepository) FindByID(ctx context.Context, id string) (*email.Email, error) {
	row := r.db.QueryRow(ctx, `SELECT `+emailColumns+` FROM emails WHERE id = $1 AND NOT deleted`, id)

	var e email.Email
	err := row.Scan(&e.ID, &e.Title, &e.Heading, &e.Summary, &e.Contents, &e.OwnerID,
		&e.Active, &e.Deleted, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &repositories.NotFoundError{Entity: "email", Key: id}
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *emailRepository) Update(ctx context.Context, id string, upd email.Update) error {
	set := []string{"updated_at = now()"}
	var args []any

	if upd.Title != nil {
		args = append(args, *upd.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if upd.Heading != nil {
		args = append(args, *upd.Heading)
		set = append(set, fmt.Sprintf("heading = $%d", len(args)))
	}
	if upd.Summary != nil {
		args = append(args, *upd.Summary)
		set = append(set, fmt.Sprintf("summary = $%d", len(args)))
	}
	if upd.Contents != nil {
		args = append(args, *upd.Contents)
		set = append(set, fmt.Sprintf("contents = $%d", len(args)))
	}

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE emails SET %s WHERE id = $%d AND NOT deleted`, strings.Join(set, ", "), len(args))

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &repositories.NotFoundError{Entity: "email", Key: id}
	}
	return nil
}
