package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkharitonov/spacetrips/internal/domain"
)

type UserRepository interface {
	FindOrCreate(ctx context.Context, email string) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

// FindOrCreate upserts a user by email and returns the stored row. The upsert
// makes concurrent first logins with the same email converge on one row.
func (r *PGUserRepository) FindOrCreate(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (email) VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at`, email)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
