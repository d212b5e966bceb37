package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/user"
	"backoffice/internal/store/repositories"
)

type userRepo struct {
	store *Store
	// recs keeps insertion order so equal sort keys stay deterministic.
	recs []*user.User
	byID map[string]int
}

func (r *userRepo) Insert(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := cloneUser(u)
	r.byID[cp.ID] = len(r.recs)
	r.recs = append(r.recs, cp)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "user", Key: id}
	}
	return cloneUser(r.recs[i]), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.recs {
		if u.Email == email && !u.Deleted {
			return cloneUser(u), nil
		}
	}
	return nil, &repositories.NotFoundError{Entity: "user", Key: email}
}

// matchUser applies the full AND pipeline: deleted exclusion, criteria,
// search OR-group over first/last name.
func matchUser(u *user.User, c user.Criteria, search string) bool {
	if u.Deleted {
		return false
	}
	if c.Role != "" && !u.HasRole(c.Role) {
		return false
	}
	if c.Active != nil && u.Active != *c.Active {
		return false
	}
	if search != "" {
		needle := strings.ToLower(search)
		first := strings.ToLower(u.Profile.FirstName)
		last := strings.ToLower(u.Profile.LastName)
		if !strings.Contains(first, needle) && !strings.Contains(last, needle) {
			return false
		}
	}
	return true
}

func (r *userRepo) List(ctx context.Context, q listing.Query, c user.Criteria) (listing.Result[*user.User], error) {
	q.Normalize()

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*user.User
	for _, u := range r.recs {
		if matchUser(u, c, q.Search) {
			matched = append(matched, u)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := userSortKey(matched[i], q.SortField), userSortKey(matched[j], q.SortField)
		if q.SortDir == listing.Desc {
			return a > b
		}
		return a < b
	})

	res := listing.Result[*user.User]{Count: len(matched), Data: []*user.User{}}
	for _, u := range pageSlice(matched, q.Skip, q.Limit) {
		res.Data = append(res.Data, cloneUser(u))
	}
	return res, nil
}

func (r *userRepo) Count(ctx context.Context, c user.Criteria, search string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, u := range r.recs {
		if matchUser(u, c, search) {
			n++
		}
	}
	return n, nil
}

func (r *userRepo) Update(ctx context.Context, id string, upd user.Update) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return &repositories.NotFoundError{Entity: "user", Key: id}
	}
	u := r.recs[i]
	if upd.FirstName != nil {
		u.Profile.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.Profile.LastName = *upd.LastName
	}
	if upd.Contact != nil {
		u.Profile.Contact = *upd.Contact
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.set(id, func(u *user.User) { u.Deleted = true })
}

func (r *userRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.set(id, func(u *user.User) { u.Active = active })
}

func (r *userRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	return r.set(id, func(u *user.User) { u.PasswordHash = hash })
}

func (r *userRepo) SetImage(ctx context.Context, id, imageID, thumbID string) error {
	return r.set(id, func(u *user.User) {
		u.Profile.ImageID = imageID
		u.Profile.ThumbID = thumbID
	})
}

func (r *userRepo) ClearImage(ctx context.Context, id string) error {
	return r.set(id, func(u *user.User) {
		u.Profile.ImageID = ""
		u.Profile.ThumbID = ""
	})
}

func (r *userRepo) set(id string, mutate func(*user.User)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return &repositories.NotFoundError{Entity: "user", Key: id}
	}
	mutate(r.recs[i])
	r.recs[i].UpdatedAt = time.Now()
	return nil
}

func userSortKey(u *user.User, field string) string {
	switch field {
	case "lastName":
		return strings.ToLower(u.Profile.LastName)
	case "email":
		return strings.ToLower(u.Email)
	case "createdAt":
		return u.CreatedAt.UTC().Format(time.RFC3339Nano)
	default: // firstName
		return strings.ToLower(u.Profile.FirstName)
	}
}

func cloneUser(u *user.User) *user.User {
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	return &cp
}
