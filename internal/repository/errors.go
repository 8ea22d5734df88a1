package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"

	bookingReferenceConstraint = "bookings_reference_key"
	passengerSeatConstraint    = "passengers_flight_seat_active_key"
)

// mapError translates driver errors into the domain taxonomy. seat names the
// label being written when a passenger insert fails.
func mapError(err error, what, seat string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case bookingReferenceConstraint:
			return domain.ErrReferenceCollision
		case passengerSeatConstraint:
			return &domain.SeatConflictError{Seat: seat}
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
