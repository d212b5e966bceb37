package postgres

import (
	"backoffice/internal/store/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the Postgres repositories behind one pool.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store { return &Store{db: db} }

func (s *Store) Users() repositories.UserRepository   { return &userRepository{db: s.db} }
func (s *Store) Pages() repositories.PageRepository   { return &pageRepository{db: s.db} }
func (s *Store) Emails() repositories.EmailRepository { return &emailRepository{db: s.db} }
func (s *Store) Images() repositories.ImageRepository { return &imageRepository{db: s.db} }
