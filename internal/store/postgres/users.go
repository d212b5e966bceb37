package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userRepository implements UserRepository with pure data access
type userRepository struct {
	db *pgxpool.Pool
}

const userColumns = `id, email, password_hash, first_name, last_name, contact, image_id, thumb_id, roles, active, deleted, created_at, updated_at`

// userSortColumns whitelists sortable fields; anything else falls back to
// first_name. Sorting is never caller-supplied SQL.
var userSortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"createdAt": "created_at",
}

func (r *userRepository) Insert(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, contact, image_id, thumb_id, roles, active, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		u.ID, u.Email, u.PasswordHash, u.Profile.FirstName, u.Profile.LastName, u.Profile.Contact,
		u.Profile.ImageID, u.Profile.ThumbID, u.Roles, u.Active, u.Deleted, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND NOT deleted`, email)
	return scanUser(row, email)
}

// userFilter builds the ANDed WHERE fragments: soft-delete exclusion always,
// criteria when present, search OR-group over first/last name when present.
func userFilter(c user.Criteria, search string) (string, []any) {
	where := []string{"NOT deleted"}
	var args []any

	if c.Role != "" {
		args = append(args, c.Role)
		where = append(where, fmt.Sprintf("$%d = ANY(roles)", len(args)))
	}
	if c.Active != nil {
		args = append(args, *c.Active)
		where = append(where, fmt.Sprintf("active = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	return strings.Join(where, " AND "), args
}

func (r *userRepository) List(ctx context.Context, q listing.Query, c user.Criteria) (listing.Result[*user.User], error) {
	q.Normalize()
	res := listing.Result[*user.User]{Data: []*user.User{}}

	where, args := userFilter(c, q.Search)

	// Total over the filter, ignoring pagination.
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&res.Count); err != nil {
		return res, err
	}

	col, ok := userSortColumns[q.SortField]
	if !ok {
		col = "first_name"
	}
	dir := "ASC"
	if q.SortDir == listing.Desc {
		dir = "DESC"
	}

	pageArgs := append(args, q.Limit, q.Skip)
	sql := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		userColumns, where, col, dir, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, sql, pageArgs...)
	if err != nil {
		return res, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return res, err
		}
		res.Data = append(res.Data, u)
	}
	return res, rows.Err()
}

func (r *userRepository) Count(ctx context.Context, c user.Criteria, search string) (int, error) {
	where, args := userFilter(c, search)
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+where, args...).Scan(&n)
	return n, err
}

func (r *userRepository) Update(ctx context.Context, id string, upd user.Update) error {
	set := []string{"updated_at = now()"}
	var args []any

	if upd.FirstName != nil {
		args = append(args, *upd.FirstName)
		set = append(set, fmt.Sprintf("first_name = $%d", len(args)))
	}
	if upd.LastName != nil {
		args = append(args, *upd.LastName)
		set = append(set, fmt.Sprintf("last_name = $%d", len(args)))
	}
	if upd.Contact != nil {
		args = append(args, *upd.Contact)
		set = append(set, fmt.Sprintf("contact = $%d", len(args)))
	}

	args = append(args, id)
	sql := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))
	return r.exec(ctx, id, sql, args...)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, id, `UPDATE users SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.exec(ctx, id, `UPDATE users SET active = $1, updated_at = now() WHERE id = $2`, active, id)
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	return r.exec(ctx, id, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
}

func (r *userRepository) SetImage(ctx context.Context, id, imageID, thumbID string) error {
	return r.exec(ctx, id, `UPDATE users SET image_id = $1, thumb_id = $2, updated_at = now() WHERE id = $3`, imageID, thumbID, id)
}

func (r *userRepository) ClearImage(ctx context.Context, id string) error {
	return r.exec(ctx, id, `UPDATE users SET image_id = '', thumb_id = '', updated_at = now() WHERE id = $1`, id)
}

func (r *userRepository) exec(ctx context.Context, id, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &repositories.NotFoundError{Entity: "user", Key: id}
	}
	return nil
}

func scanUser(row pgx.Row, key string) (*user.User, error) {
	u, err := scanUserRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &repositories.NotFoundError{Entity: "user", Key: key}
	}
	return u, err
}

func scanUserRow(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.Profile.FirstName, &u.Profile.LastName, &u.Profile.Contact,
		&u.Profile.ImageID, &u.Profile.ThumbID,
		&u.Roles, &u.Active, &u.Deleted, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
