package page

import (
	"strings"
	"time"

	"backoffice/internal/validate"
)

// Page is a content page shown in the public site and managed through the
// admin list view. Deleted pages stay in storage but are excluded from every
// listing.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary,omitempty"`
	Contents  string    `json:"contents"`
	OwnerID   string    `json:"ownerId"`
	Active    bool      `json:"active"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds a page with a validated slug and title.
func New(id, title, slug, summary, contents, ownerID string) (*Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &validate.FieldError{Field: "title", Reason: "required"}
	}
	if !validate.Slug(slug) {
		return nil, &validate.FieldError{Field: "slug", Value: slug}
	}
	if strings.TrimSpace(contents) == "" {
		return nil, &validate.FieldError{Field: "contents", Reason: "required"}
	}

	now := time.Now()
	return &Page{
		ID:        id,
		Title:     title,
		Slug:      slug,
		Summary:   summary,
		Contents:  contents,
		OwnerID:   ownerID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
