package domain

import (
	"fmt"
	"time"
)

// BookingStatus is the closed set of booking states. The string values are
// the labels stored in the bookings.status column.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled
}

func (s BookingStatus) String() string {
	return string(s)
}

type Booking struct {
	ID             int64         `json:"id"`
	Reference      string        `json:"reference"`
	UserID         int64         `json:"user_id,omitempty"`
	Email          string        `json:"email,omitempty"`
	FlightID       int64         `json:"flight_id"`
	PassengerCount int           `json:"passenger_count"`
	TotalPrice     Money         `json:"total_price"`
	Status         BookingStatus `json:"status"`
	Paid           bool          `json:"paid"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Passengers     []Passenger   `json:"passengers,omitempty"`
}

// Transition moves the booking to next or returns ErrInvalidTransition.
func (b *Booking) Transition(next BookingStatus, at time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	b.UpdatedAt = at
	if next == BookingStatusCancelled {
		b.CancelledAt = &at
	}
	return nil
}

// MarkPaid sets the payment flag. Only confirmed, unpaid bookings qualify.
func (b *Booking) MarkPaid(at time.Time) error {
	if b.Status != BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot pay booking in status %s", ErrInvalidTransition, b.Status)
	}
	if b.Paid {
		return ErrAlreadyPaid
	}
	b.Paid = true
	b.PaidAt = &at
	b.UpdatedAt = at
	return nil
}

func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		labels = append(labels, p.SeatLabel)
	}
	return labels
}
