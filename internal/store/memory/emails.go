package memory

import (
	"context"
	"time"

	"backoffice/internal/domain/email"
	"backoffice/internal/store/repositories"
)

type emailRepo struct {
	store *Store
	recs  []*email.Email
	byID  map[string]int
}

func (r *emailRepo) Insert(ctx context.Context, e *email.Email) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *e
	r.byID[cp.ID] = len(r.recs)
	r.recs = append(r.recs, &cp)
	return nil
}

func (r *emailRepo) FindByID(ctx context.Context, id string) (*email.Email, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok || r.recs[i].Deleted {
		return nil, &repositories.NotFoundError{Entity: "email", Key: id}
	}
	cp := *r.recs[i]
	return &cp, nil
}

func (r *emailRepo) Update(ctx context.Context, id string, upd email.Update) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i, ok := r.byID[id]
	if !ok || r.recs[i].Deleted {
		return &repositories.NotFoundError{Entity: "email", Key: id}
	}
	e := r.recs[i]
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Heading != nil {
		e.Heading = *upd.Heading
	}
	if upd.Summary != nil {
		e.Summary = *upd.Summary
	}
	if upd.Contents != nil {
		e.Contents = *upd.Contents
	}
	e.UpdatedAt = time.Now()
	return nil
}
