package email

import (
	"fmt"
	"strings"
	"time"

	"backoffice/internal/validate"
)

// Email is a stored email template edited through the admin screens.
type Email struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Heading   string    `json:"heading"`
	Summary   string    `json:"summary"`
	Contents  string    `json:"contents"`
	OwnerID   string    `json:"ownerId"`
	Active    bool      `json:"active"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Field length bounds shared with the editor form.
const (
	minFieldLen = 8
	maxFieldLen = 255
)

func checkField(name, value string) error {
	value = strings.TrimSpace(value)
	if len(value) < minFieldLen || len(value) > maxFieldLen {
		return &validate.FieldError{
			Field:  name,
			Reason: fmt.Sprintf("must be between %d and %d characters", minFieldLen, maxFieldLen),
		}
	}
	return nil
}

// New builds an email template with validated fields.
func New(id, title, heading, summary, contents, ownerID string) (*Email, error) {
	if err := checkField("title", title); err != nil {
		return nil, err
	}
	if err := checkField("heading", heading); err != nil {
		return nil, err
	}
	if err := checkField("summary", summary); err != nil {
		return nil, err
	}
	if strings.TrimSpace(contents) == "" {
		return nil, &validate.FieldError{Field: "contents", Reason: "required"}
	}

	now := time.Now()
	return &Email{
		ID:        id,
		Title:     title,
		Heading:   heading,
		Summary:   summary,
		Contents:  contents,
		OwnerID:   ownerID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update is a partial template mutation: nil fields are untouched and not
// validated.
type Update struct {
	Title    *string `json:"title,omitempty"`
	Heading  *string `json:"heading,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	Contents *string `json:"contents,omitempty"`
}

// Validate checks only the fields present in the update.
func (p Update) Validate() error {
	if p.Title != nil {
		if err := checkField("title", *p.Title); err != nil {
			return err
		}
	}
	if p.Heading != nil {
		if err := checkField("heading", *p.Heading); err != nil {
			return err
		}
	}
	if p.Summary != nil {
		if err := checkField("summary", *p.Summary); err != nil {
			return err
		}
	}
	if p.Contents != nil && strings.TrimSpace(*p.Contents) == "" {
		return &validate.FieldError{Field: "contents", Reason: "required"}
	}
	return nil
}
