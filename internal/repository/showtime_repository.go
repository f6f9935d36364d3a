package repository

import (
	"context"
	"errors"
	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShowtimeRepository is the read side of the catalog used by checkout.
type ShowtimeRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Showtime, error)
}

type ShowtimeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowtimeRepository(pool *pgxpool.Pool) ShowtimeRepository {
	return &ShowtimeRepositoryImpl{
		pool: pool,
	}
}

func (r *ShowtimeRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Showtime, error) {
	query := `
		SELECT s.id, s.movie_id, s.room, s.format, s.starts_at, s.price, s.created_at, m.title
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.id = $1
	`

	var showtime model.Showtime
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Room,
		&showtime.Format,
		&showtime.StartsAt,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.MovieTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShowtimeNotFound
		}
		return nil, err
	}
	return &showtime, nil
}
