package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const flightColumns = `id, flight_number, airline, from_city, to_city, departure_time, arrival_time, fare_cents,
	total_seats, available_seats, seat_rows, seats_per_row, status, created_at, updated_at`

const bookingColumns = `id, reference, user_id, email, flight_id, passenger_count, total_price_cents,
	status, paid, paid_at, cancelled_at, created_at, updated_at`

const passengerColumns = `id, booking_id, flight_id, first_name, last_name, national_id, date_of_birth,
	gender, seat_label, seat_type, active`

func scanFlight(row scanner) (*domain.Flight, error) {
	var (
		f      domain.Flight
		fare   int64
		status string
	)
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.FromCity, &f.ToCity, &f.DepartureTime, &f.ArrivalTime, &fare,
		&f.TotalSeats, &f.AvailableSeats, &f.Rows, &f.SeatsPerRow, &status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Fare = domain.Money(fare)
	f.Status = domain.FlightStatus(status)
	return &f, nil
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		b      domain.Booking
		userID *int64
		email  *string
		total  int64
		status string
	)
	if err := row.Scan(&b.ID, &b.Reference, &userID, &email, &b.FlightID, &b.PassengerCount, &total,
		&status, &b.Paid, &b.PaidAt, &b.CancelledAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	st, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", b.ID, err)
	}
	b.Status = st
	b.TotalPrice = domain.Money(total)
	if userID != nil {
		b.UserID = *userID
	}
	if email != nil {
		b.Email = *email
	}
	return &b, nil
}

func scanPassenger(row scanner) (domain.Passenger, error) {
	var (
		p              domain.Passenger
		gender, seatTy string
	)
	if err := row.Scan(&p.ID, &p.BookingID, &p.FlightID, &p.FirstName, &p.LastName, &p.NationalID, &p.DateOfBirth,
		&gender, &p.SeatLabel, &seatTy, &p.Active); err != nil {
		return p, err
	}
	p.Gender = domain.Gender(gender)
	p.SeatType = domain.SeatType(seatTy)
	return p, nil
}

func listPassengers(ctx context.Context, q querier, bookingIDs ...int64) (map[int64][]domain.Passenger, error) {
	out := make(map[int64][]domain.Passenger, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE booking_id = ANY($1) ORDER BY id`, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		out[p.BookingID] = append(out[p.BookingID], p)
	}
	return out, rows.Err()
}

func takenSeats(ctx context.Context, q querier, flightID int64) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT seat_label FROM passengers WHERE flight_id=$1 AND active ORDER BY id`, flightID)
	if err != nil {
		return nil, mapError(err, "list taken seats", "")
	}
	defer rows.Close()

	taken := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		taken = append(taken, label)
	}
	return taken, rows.Err()
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
