package user

import (
	"strings"
	"time"

	"backoffice/internal/validate"
)

// User represents an account in the admin application. PasswordHash never
// leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile carries the mutable descriptive fields. ImageID/ThumbID reference
// upload metadata records; both empty means no profile image.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Contact   string `json:"contact,omitempty"`
	ImageID   string `json:"imageId,omitempty"`
	ThumbID   string `json:"thumbId,omitempty"`
}

// Role names. RoleStandard is assigned when an insert supplies no roles.
const (
	RoleStandard   = "standard"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Criteria is the typed extra constraint callers may AND into a user list
// query. Zero values never restrict.
type Criteria struct {
	Role   string `json:"role,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// IsEmpty reports whether the criteria adds no constraint.
func (c Criteria) IsEmpty() bool {
	return c.Role == "" && c.Active == nil
}

// New builds a user with validated fields and defaulted roles. The caller
// supplies the already-hashed password.
func New(id, email, passwordHash string, profile Profile, roles []string) (*User, error) {
	email = strings.TrimSpace(email)
	if !validate.Email(email) {
		return nil, &validate.FieldError{Field: "email", Value: email}
	}
	if !validate.Name(profile.FirstName) {
		return nil, &validate.FieldError{Field: "firstName", Value: profile.FirstName}
	}
	if !validate.Name(profile.LastName) {
		return nil, &validate.FieldError{Field: "lastName", Value: profile.LastName}
	}
	if profile.Contact != "" && !validate.PhoneNum(profile.Contact) {
		return nil, &validate.FieldError{Field: "contact", Value: profile.Contact}
	}
	if len(roles) == 0 {
		roles = []string{RoleStandard}
	}

	now := time.Now()
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      profile,
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Update is a partial user mutation: nil fields are left untouched and are
// not validated.
type Update struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Contact   *string `json:"contact,omitempty"`
}

// Validate checks only the fields present in the update.
func (p Update) Validate() error {
	if p.FirstName != nil && !validate.Name(*p.FirstName) {
		return &validate.FieldError{Field: "firstName", Value: *p.FirstName}
	}
	if p.LastName != nil && !validate.Name(*p.LastName) {
		return &validate.FieldError{Field: "lastName", Value: *p.LastName}
	}
	if p.Contact != nil && !validate.PhoneNum(*p.Contact) {
		return &validate.FieldError{Field: "phoneNum", Value: *p.Contact}
	}
	return nil
}
