package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGGateway struct {
	db *pgxpool.Pool
}

func NewGateway(db *pgxpool.Pool) Gateway {
	return &PGGateway{db: db}
}

func (g *PGGateway) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := g.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return &domain.TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapError(err, "commit", ""); domain.IsDomainError(mapped) {
			return mapped
		}
		return &domain.TransactionError{Op: "commit", Err: err}
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) LockFlight(ctx context.Context, flightID int64) (*domain.Flight, error) {
	f, err := scanFlight(t.tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, flightID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("flight %d", flightID), "")
	}
	return f, nil
}

func (t *pgTx) TakenSeats(ctx context.Context, flightID int64) ([]string, error) {
	return takenSeats(ctx, t.tx, flightID)
}

// SaveFlightSeats writes the counter computed by the seat inventory. The
// CHECK constraint on flights rejects values outside [0, total_seats].
func (t *pgTx) SaveFlightSeats(ctx context.Context, flightID int64, available int) error {
	tag, err := t.tx.Exec(ctx, `UPDATE flights SET available_seats=$1, updated_at=now() WHERE id=$2`, available, flightID)
	if err != nil {
		return mapError(err, "update flight seats", "")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", flightID, domain.ErrNotFound)
	}
	return nil
}

func (t *pgTx) InsertBooking(ctx context.Context, b *domain.Booking) error {
	err := t.tx.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, email, flight_id, passenger_count, total_price_cents, status, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8, $8)
		RETURNING id`,
		b.Reference, nullableID(b.UserID), nullableString(b.Email), b.FlightID, b.PassengerCount, b.TotalPrice.Cents(), b.Status.String(), b.CreatedAt).
		Scan(&b.ID)
	return mapError(err, "insert booking", "")
}

func (t *pgTx) InsertPassengers(ctx context.Context, passengers []domain.Passenger) error {
	for i := range passengers {
		p := &passengers[i]
		err := t.tx.QueryRow(ctx, `INSERT INTO passengers (booking_id, flight_id, first_name, last_name, national_id, date_of_birth, gender, seat_label, seat_type, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
			RETURNING id`,
			p.BookingID, p.FlightID, p.FirstName, p.LastName, p.NationalID, dateOnly(p.DateOfBirth), string(p.Gender), p.SeatLabel, string(p.SeatType)).
			Scan(&p.ID)
		if err != nil {
			return mapError(err, "insert passenger", p.SeatLabel)
		}
		p.Active = true
	}
	return nil
}

func (t *pgTx) LockBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := scanBooking(t.tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 FOR UPDATE`, bookingID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("booking %d", bookingID), "")
	}
	passengers, err := listPassengers(ctx, t.tx, b.ID)
	if err != nil {
		return nil, mapError(err, "list passengers", "")
	}
	b.Passengers = passengers[b.ID]
	return b, nil
}

func (t *pgTx) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	tag, err := t.tx.Exec(ctx, `UPDATE bookings SET status=$1, paid=$2, paid_at=$3, cancelled_at=$4, updated_at=$5 WHERE id=$6`,
		b.Status.String(), b.Paid, b.PaidAt, b.CancelledAt, b.UpdatedAt, b.ID)
	if err != nil {
		return mapError(err, "update booking", "")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

func (t *pgTx) DeactivatePassengers(ctx context.Context, bookingID int64) ([]string, error) {
	rows, err := t.tx.Query(ctx, `UPDATE passengers SET active=false WHERE booking_id=$1 AND active RETURNING seat_label`, bookingID)
	if err != nil {
		return nil, mapError(err, "release passengers", "")
	}
	defer rows.Close()

	released := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		released = append(released, label)
	}
	return released, rows.Err()
}

var (
	_ Gateway = (*PGGateway)(nil)
	_ Tx      = (*pgTx)(nil)
)
