package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
	"backoffice/internal/store/repositories"
)

type pageRepo struct {
	store *Store
	recs  []*page.Page
	byID  map[string]int
}

func (r *pageRepo) Insert(ctx context.Context, p *page.Page) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *p
	r.byID[cp.ID] = len(r.recs)
	r.recs = append(r.recs, &cp)
	return nil
}

func (r *pageRepo) FindByID(ctx context.Context, id string) (*page.Page, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "page", Key: id}
	}
	cp := *r.recs[i]
	return &cp, nil
}

func matchPage(p *page.Page, search string) bool {
	if p.Deleted {
		return false
	}
	if search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Slug), needle) {
			return false
		}
	}
	return true
}

func (r *pageRepo) List(ctx context.Context, q listing.Query) (listing.Result[*page.Page], error) {
	q.Normalize()

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*page.Page
	for _, p := range r.recs {
		if matchPage(p, q.Search) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := pageSortKey(matched[i], q.SortField), pageSortKey(matched[j], q.SortField)
		if q.SortDir == listing.Desc {
			return a > b
		}
		return a < b
	})

	res := listing.Result[*page.Page]{Count: len(matched), Data: []*page.Page{}}
	for _, p := range pageSlice(matched, q.Skip, q.Limit) {
		cp := *p
		res.Data = append(res.Data, &cp)
	}
	return res, nil
}

func (r *pageRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return &repositories.NotFoundError{Entity: "page", Key: id}
	}
	r.recs[i].Deleted = true
	r.recs[i].UpdatedAt = time.Now()
	return nil
}

func pageSortKey(p *page.Page, field string) string {
	switch field {
	case "slug":
		return strings.ToLower(p.Slug)
	case "createdAt":
		return p.CreatedAt.UTC().Format(time.RFC3339Nano)
	default: // title
		return strings.ToLower(p.Title)
	}
}

// pageSlice applies skip then limit; skip beyond the end yields an empty
// slice, never an error.
func pageSlice[T any](recs []T, skip, limit int) []T {
	if skip >= len(recs) {
		return nil
	}
	recs = recs[skip:]
	if limit < len(recs) {
		recs = recs[:limit]
	}
	return recs
}
