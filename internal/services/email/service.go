// Package email implements the email template methods used by the admin
// editor screens.
package email

import (
	"context"

	"backoffice/internal/auth"
	"backoffice/internal/domain/email"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/repositories"

	"github.com/google/uuid"
)

// Service handles email template operations
type Service struct {
	emails repositories.EmailRepository
}

// NewService creates a new email template service
func NewService(emails repositories.EmailRepository) *Service {
	return &Service{emails: emails}
}

// FindOne fetches a template by id.
func (s *Service) FindOne(ctx context.Context, actor auth.Actor, id string) (*email.Email, error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.emails.FindByID(ctx, id)
}

// Insert creates a template after field validation and returns its id.
func (s *Service) Insert(ctx context.Context, actor auth.Actor, title, heading, summary, contents string) (string, error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return "", err
	}

	e, err := email.New(uuid.NewString(), title, heading, summary, contents, actor.UserID)
	if err != nil {
		return "", err
	}
	if err := s.emails.Insert(ctx, e); err != nil {
		return "", &ServiceError{Op: "insert", Err: err}
	}
	return e.ID, nil
}

// Update applies a partial template mutation. Absent fields are neither
// validated nor touched.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, upd email.Update) error {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return err
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	return s.emails.Update(ctx, id, upd)
}

// ServiceError represents an email template service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "email service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
