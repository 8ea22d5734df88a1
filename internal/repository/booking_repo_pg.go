package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference=$1`, reference)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, mapError(err, "list bookings", "")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	passengers, err := listPassengers(ctx, r.db, ids...)
	if err != nil {
		return nil, mapError(err, "list passengers", "")
	}
	for i := range bookings {
		bookings[i].Passengers = passengers[bookings[i].ID]
	}
	return bookings, nil
}

func (r *PGBookingRepository) getOne(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, "get booking", "")
	}
	passengers, err := listPassengers(ctx, r.db, b.ID)
	if err != nil {
		return nil, mapError(err, "list passengers", "")
	}
	b.Passengers = passengers[b.ID]
	return b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
