package repositories

import (
	"context"

	"backoffice/internal/domain/email"
	"backoffice/internal/domain/image"
	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
	"backoffice/internal/domain/user"
)

// UserRepository defines the contract for account data access. List and Count
// share the filter pipeline: soft-delete exclusion, then criteria, then the
// case-insensitive search OR-group over profile first/last name.
type UserRepository interface {
	Insert(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context, q listing.Query, c user.Criteria) (listing.Result[*user.User], error)
	Count(ctx context.Context, c user.Criteria, search string) (int, error)
	Update(ctx context.Context, id string, upd user.Update) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetPasswordHash(ctx context.Context, id, hash string) error
	SetImage(ctx context.Context, id, imageID, thumbID string) error
	ClearImage(ctx context.Context, id string) error
}

// PageRepository defines the contract for content page data access. List
// searches over title and slug. Delete is a soft delete.
type PageRepository interface {
	Insert(ctx context.Context, p *page.Page) error
	FindByID(ctx context.Context, id string) (*page.Page, error)
	List(ctx context.Context, q listing.Query) (listing.Result[*page.Page], error)
	Delete(ctx context.Context, id string) error
}

// EmailRepository defines the contract for email template data access.
type EmailRepository interface {
	Insert(ctx context.Context, e *email.Email) error
	FindByID(ctx context.Context, id string) (*email.Email, error)
	Update(ctx context.Context, id string, upd email.Update) error
}

// ImageRepository defines the contract for upload metadata. Originals and
// thumbnails are separate record sets sharing one shape.
type ImageRepository interface {
	SaveImage(ctx context.Context, f *image.File) error
	FindImage(ctx context.Context, id string) (*image.File, error)
	DeleteImage(ctx context.Context, id string) error
	SaveThumb(ctx context.Context, f *image.File) error
	FindThumb(ctx context.Context, id string) (*image.File, error)
	DeleteThumb(ctx context.Context, id string) error
}

// Store bundles the repositories the service layer needs.
type Store interface {
	Users() UserRepository
	Pages() PageRepository
	Emails() EmailRepository
	Images() ImageRepository
}

// NotFoundError is returned by every repository when the referenced id (or
// email) does not resolve to a record.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " " + e.Key + " not found"
}
