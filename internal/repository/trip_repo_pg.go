package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkharitonov/spacetrips/internal/domain"
)

type TripRepository interface {
	FindOrCreate(ctx context.Context, userID int64, launchID int) (*domain.Trip, error)
	Delete(ctx context.Context, userID int64, launchID int) error
	ListForUser(ctx context.Context, userID int64) ([]domain.Trip, error)
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

// FindOrCreate records a booking as a single atomic upsert on the
// (user_id, launch_id) pair. Booking the same launch twice returns the
// existing row instead of creating a duplicate.
func (r *PGTripRepository) FindOrCreate(ctx context.Context, userID int64, launchID int) (*domain.Trip, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO trips (user_id, launch_id) VALUES ($1, $2)
		ON CONFLICT (user_id, launch_id) DO NOTHING
		RETURNING id, user_id, launch_id, created_at`, userID, launchID)

	var t domain.Trip
	err := row.Scan(&t.ID, &t.UserID, &t.LaunchID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: the row already existed, fetch it.
		row = r.db.QueryRow(ctx, `SELECT id, user_id, launch_id, created_at FROM trips
			WHERE user_id=$1 AND launch_id=$2`, userID, launchID)
		err = row.Scan(&t.ID, &t.UserID, &t.LaunchID, &t.CreatedAt)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGTripRepository) Delete(ctx context.Context, userID int64, launchID int) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trips WHERE user_id=$1 AND launch_id=$2`, userID, launchID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGTripRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, launch_id, created_at FROM trips
		WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0)
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.LaunchID, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

var _ TripRepository = (*PGTripRepository)(nil)
