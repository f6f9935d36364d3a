package repository

import (
	"context"
	"errors"
	"fmt"
	"go-gin-cinema-booking/internal/model"
	apperrors "go-gin-cinema-booking/pkg/app_errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingStore is the Booking Ledger. Every status change goes through
// TransitionFromPending.
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindByIDAndUser(ctx context.Context, id int64, userID int64) (*model.Booking, error)
	FindByCode(ctx context.Context, code string) (*model.Booking, error)
	// TransitionFromPending is a compare-and-swap on payment_status = 'pending'.
	// It returns ErrBookingNotPending when no pending row matched.
	TransitionFromPending(ctx context.Context, t model.Transition) (*model.Booking, error)
	// AssignBookingCode returns ErrDuplicateBookingCode on a unique violation.
	AssignBookingCode(ctx context.Context, id int64, code string) error
	RevenueSummary(ctx context.Context, from, to *time.Time) (*model.RevenueSummary, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.Booking, error)
}

type BookingRepository interface {
	BookingStore
	// WithTx runs fn in one transaction; fn's store is bound to it.
	WithTx(ctx context.Context, fn func(store BookingStore) error) error
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
		db:   pool,
	}
}

const bookingColumns = `id, user_id, showtime_id, ticket_count, total_price, payment_method,
		payment_status, transaction_id, paid_at, booking_code, created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ShowtimeID,
		&b.TicketCount,
		&b.TotalPrice,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.TransactionID,
		&b.PaidAt,
		&b.BookingCode,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.BookingCode != nil {
		code := strings.TrimSpace(*b.BookingCode)
		b.BookingCode = &code
	}
	return &b, nil
}

func (r *BookingRepositoryImpl) WithTx(ctx context.Context, fn func(store BookingStore) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&BookingRepositoryImpl{pool: r.pool, db: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			user_id, showtime_id, ticket_count, total_price, payment_method, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns

	created, err := scanBooking(r.db.QueryRow(ctx, query,
		booking.UserID, booking.ShowtimeID, booking.TicketCount,
		booking.TotalPrice, booking.PaymentMethod, booking.PaymentStatus,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return created, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) FindByIDAndUser(ctx context.Context, id int64, userID int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) TransitionFromPending(ctx context.Context, t model.Transition) (*model.Booking, error) {
	// transaction_id and paid_at are write-once
	query := `
		UPDATE bookings
		SET payment_status = $1,
		    transaction_id = COALESCE(transaction_id, $2),
		    paid_at = COALESCE(paid_at, $3),
		    updated_at = $4
		WHERE id = $5 AND user_id = $6 AND payment_status = 'pending'
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query,
		t.Status, t.TransactionID, t.PaidAt.UTC(), time.Now().UTC(), t.BookingID, t.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotPending
		}
		return nil, fmt.Errorf("failed to transition booking: %w", err)
	}
	return booking, nil
}

func (r *BookingRepositoryImpl) AssignBookingCode(ctx context.Context, id int64, code string) error {
	// savepoint, so a unique violation does not abort the outer transaction
	sp, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer sp.Rollback(ctx)

	_, err = sp.Exec(ctx, `
		UPDATE bookings
		SET booking_code = $1, updated_at = $2
		WHERE id = $3 AND booking_code IS NULL
	`, code, time.Now().UTC(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateBookingCode
		}
		return fmt.Errorf("failed to assign booking code: %w", err)
	}

	return sp.Commit(ctx)
}

func (r *BookingRepositoryImpl) RevenueSummary(ctx context.Context, from, to *time.Time) (*model.RevenueSummary, error) {
	conds := []string{"payment_status = 'paid'"}
	args := []interface{}{}
	argPos := 1

	if from != nil {
		conds = append(conds, fmt.Sprintf("paid_at >= $%d", argPos))
		args = append(args, from.UTC())
		argPos++
	}
	if to != nil {
		conds = append(conds, fmt.Sprintf("paid_at < $%d", argPos))
		args = append(args, to.UTC())
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(total_price), 0), COUNT(*)
		FROM bookings
		WHERE %s
	`, strings.Join(conds, " AND "))

	summary := &model.RevenueSummary{From: from, To: to}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&summary.TotalRevenue, &summary.BookingCount); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *BookingRepositoryImpl) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE payment_status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
