// Package memory is an in-process implementation of the repository
// contracts. It backs APP_ENV=dev runs and the service tests; the filter,
// sort and pagination semantics here are the reference the Postgres layer
// must match.
package memory

import (
	"sync"

	"backoffice/internal/store/repositories"
)

// Store holds every collection behind one lock. Collections are small in
// dev/test use, so per-collection locking buys nothing.
type Store struct {
	mu     sync.RWMutex
	users  *userRepo
	pages  *pageRepo
	emails *emailRepo
	images *imageRepo
}

// New creates an empty store.
func New() *Store {
	s := &Store{}
	s.users = &userRepo{store: s, byID: map[string]int{}}
	s.pages = &pageRepo{store: s, byID: map[string]int{}}
	s.emails = &emailRepo{store: s, byID: map[string]int{}}
	s.images = &imageRepo{store: s, images: map[string]fileRec{}, thumbs: map[string]fileRec{}}
	return s
}

func (s *Store) Users() repositories.UserRepository   { return s.users }
func (s *Store) Pages() repositories.PageRepository   { return s.pages }
func (s *Store) Emails() repositories.EmailRepository { return s.emails }
func (s *Store) Images() repositories.ImageRepository { return s.images }
