// Package user implements the account methods: insert with credential
// minting, the list/count query pipeline, partial updates, activation,
// password reset and the best-effort profile image detach. Every method
// checks the caller's role before touching storage.
package user

import (
	"context"

	"backoffice/internal/auth"
	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/repositories"
	"backoffice/internal/uploads"
	"backoffice/internal/validate"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles account operations
type Service struct {
	users   repositories.UserRepository
	images  repositories.ImageRepository
	uploads uploads.Dir
}

// NewService creates a new account service
func NewService(users repositories.UserRepository, images repositories.ImageRepository, up uploads.Dir) *Service {
	return &Service{users: users, images: images, uploads: up}
}

// InsertRequest carries the signup/create payload. Contact is optional on
// the public signup path.
type InsertRequest struct {
	Email     string `json:"email"`
	Password  string `json:"passwd"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Contact   string `json:"contact,omitempty"`
}

// Insert validates the payload, mints the credential record and stores the
// user. When no roles are supplied the account gets the standard role; an
// explicit role assignment is reserved for super-admins (the old client used
// to pick its own roles at signup, which was an open door).
func (s *Service) Insert(ctx context.Context, actor auth.Actor, req InsertRequest, roles []string) (string, error) {
	if len(roles) > 0 {
		if err := auth.Require(actor, user.RoleSuperAdmin); err != nil {
			return "", err
		}
	}

	if !validate.Password(req.Password) {
		return "", &validate.FieldError{Field: "password", Reason: "does not meet strength requirements"}
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", &ServiceError{Op: "insert", Err: err}
	}

	u, err := user.New(uuid.NewString(), req.Email, hash, user.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
	}, roles)
	if err != nil {
		return "", err
	}

	if _, err := s.users.FindByEmail(ctx, u.Email); err == nil {
		return "", &validate.FieldError{Field: "email", Value: u.Email, Reason: "already registered"}
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return "", &ServiceError{Op: "insert", Err: err}
	}
	return u.ID, nil
}

// Authenticate verifies credentials for login. Deleted or deactivated
// accounts fail the same way as a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, auth.ErrForbidden
	}
	if u.Deleted || !u.Active || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, auth.ErrForbidden
	}
	return u, nil
}

// Find runs the coalesced list query over accounts: soft-delete exclusion,
// optional typed criteria, case-insensitive search on first/last name.
// Count in the envelope ignores pagination.
func (s *Service) Find(ctx context.Context, actor auth.Actor, q listing.Query, c user.Criteria) (listing.Result[*user.User], error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return listing.Result[*user.User]{}, err
	}

	res, err := s.users.List(ctx, q, c)
	if err != nil {
		return res, &ServiceError{Op: "find", Err: err}
	}
	return res, nil
}

// Count returns the total matching the filter, without a page slice.
func (s *Service) Count(ctx context.Context, actor auth.Actor, c user.Criteria, search string) (int, error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return 0, err
	}
	return s.users.Count(ctx, c, search)
}

// FindOne fetches a single account by id.
func (s *Service) FindOne(ctx context.Context, actor auth.Actor, id string) (*user.User, error) {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Update applies a partial profile mutation. Only fields present in the
// payload are validated and written.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, upd user.Update) error {
	if err := auth.Require(actor, user.RoleAdmin, user.RoleSuperAdmin); err != nil {
		return err
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	return s.users.Update(ctx, id, upd)
}

// Delete soft-deletes an account.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Require(actor, user.RoleSuperAdmin); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// Activate re-enables an account.
func (s *Service) Activate(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Require(actor, user.RoleSuperAdmin); err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, true)
}

// Deactivate disables an account without deleting it.
func (s *Service) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Require(actor, user.RoleSuperAdmin); err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, false)
}

// ResetPassword replaces an account's password after a strength check.
func (s *Service) ResetPassword(ctx context.Context, actor auth.Actor, id, newPassword string) error {
	if err := auth.Require(actor, user.RoleSuperAdmin); err != nil {
		return err
	}
	if !validate.Password(newPassword) {
		return &validate.FieldError{Field: "password", Reason: "does not meet strength requirements"}
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return &ServiceError{Op: "resetPasswd", Err: err}
	}
	return s.users.SetPasswordHash(ctx, id, hash)
}

// DeleteImage detaches the acting user's profile image: remove the backing
// file and its metadata record, then the derived thumbnail and its record,
// then null out the profile fields. Each step is independently fallible;
// file removal is fire-and-forget and a failed step is logged, never fatal
// to the steps after it.
func (s *Service) DeleteImage(ctx context.Context, actor auth.Actor) error {
	if actor.UserID == "" {
		return auth.ErrForbidden
	}

	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if u.Profile.ImageID == "" {
		return &repositories.NotFoundError{Entity: "image", Key: "profile"}
	}

	if img, err := s.images.FindImage(ctx, u.Profile.ImageID); err == nil {
		s.uploads.RemoveAsync(s.uploads.ImagePath(img.ID, img.Ext))
	} else {
		log.Warn().Err(err).Str("imageId", u.Profile.ImageID).Msg("image detach: metadata lookup failed")
	}
	if err := s.images.DeleteImage(ctx, u.Profile.ImageID); err != nil {
		log.Warn().Err(err).Str("imageId", u.Profile.ImageID).Msg("image detach: image record delete failed")
	}

	if u.Profile.ThumbID != "" {
		if th, err := s.images.FindThumb(ctx, u.Profile.ThumbID); err == nil {
			s.uploads.RemoveAsync(s.uploads.ThumbPath(th.ID, th.Ext))
		} else {
			log.Warn().Err(err).Str("thumbId", u.Profile.ThumbID).Msg("image detach: thumb lookup failed")
		}
		if err := s.images.DeleteThumb(ctx, u.Profile.ThumbID); err != nil {
			log.Warn().Err(err).Str("thumbId", u.Profile.ThumbID).Msg("image detach: thumb record delete failed")
		}
	}

	return s.users.ClearImage(ctx, actor.UserID)
}

// ServiceError represents an account service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "user service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
