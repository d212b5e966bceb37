// Package page implements the content-page methods: the shared list-query
// pipeline plus soft delete. Every method checks the caller's role before
// building any filter.
package page

import (
	"context"

	"backoffice/internal/auth"
	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/repositories"

	"github.com/google/uuid"
)

// Service handles content page operations
type Service struct {
	pages repositories.PageRepository
}

// NewService creates a new page service
func NewService(pages repositories.PageRepository) *Service {
	return &Service{pages: pages}
}

// Find runs the coalesced list query: soft-deleted pages are always
// excluded, the search text matches title or slug case-insensitively, and
// Count ignores pagination. Any authenticated role may list.
func (s *Service) Find(ctx context.Context, actor auth.Actor, q listing.Query) (listing.Result[*page.Page], error) {
	if err := auth.Require(actor, user.RoleStandard, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return listing.Result[*page.Page]{}, err
	}

	res, err := s.pages.List(ctx, q)
	if err != nil {
		return res, &ServiceError{Op: "find", Err: err}
	}
	return res, nil
}

// FindOne fetches a single page by id.
func (s *Service) FindOne(ctx context.Context, actor auth.Actor, id string) (*page.Page, error) {
	if err := auth.Require(actor, user.RoleStandard, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.pages.FindByID(ctx, id)
}

// Insert creates a new content page owned by the actor.
func (s *Service) Insert(ctx context.Context, actor auth.Actor, title, slug, summary, contents string) (string, error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return "", err
	}

	p, err := page.New(uuid.NewString(), title, slug, summary, contents, actor.UserID)
	if err != nil {
		return "", err
	}
	if err := s.pages.Insert(ctx, p); err != nil {
		return "", &ServiceError{Op: "insert", Err: err}
	}
	return p.ID, nil
}

// Delete soft-deletes a page. The record stays in storage and disappears
// from listings.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return err
	}
	return s.pages.Delete(ctx, id)
}

// ServiceError represents a page service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "page service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
