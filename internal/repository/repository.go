package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Gateway runs a unit of work. fn's changes are committed together when it
// returns nil and rolled back otherwise.
type Gateway interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of writes the booking engine performs inside one unit of
// work. Lock* methods serialize concurrent transactions on the same row.
type Tx interface {
	LockFlight(ctx context.Context, flightID int64) (*domain.Flight, error)
	TakenSeats(ctx context.Context, flightID int64) ([]string, error)
	SaveFlightSeats(ctx context.Context, flightID int64, available int) error
	InsertBooking(ctx context.Context, booking *domain.Booking) error
	InsertPassengers(ctx context.Context, passengers []domain.Passenger) error
	LockBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, booking *domain.Booking) error
	DeactivatePassengers(ctx context.Context, bookingID int64) ([]string, error)
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	TakenSeats(ctx context.Context, flightID int64) ([]string, error)
}

// BookingRepository reads bookings outside of a transaction. Returned
// bookings carry their passengers.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}
