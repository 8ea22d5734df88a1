package kafka

import (
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingPaid      = "booking_paid"
	EventBookingCancelled = "booking_cancelled"
)

type BookingEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	BookingID      int64     `json:"booking_id"`
	Reference      string    `json:"reference"`
	FlightID       int64     `json:"flight_id"`
	UserID         int64     `json:"user_id,omitempty"`
	Email          string    `json:"email,omitempty"`
	Status         string    `json:"status"`
	PassengerCount int       `json:"passenger_count"`
	Seats          []string  `json:"seats"`
	TotalPrice     string    `json:"total_price"`
	Paid           bool      `json:"paid"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		BookingID:      b.ID,
		Reference:      b.Reference,
		FlightID:       b.FlightID,
		UserID:         b.UserID,
		Email:          b.Email,
		Status:         b.Status.String(),
		PassengerCount: b.PassengerCount,
		Seats:          b.SeatLabels(),
		TotalPrice:     b.TotalPrice.String(),
		Paid:           b.Paid,
		OccurredAt:     at,
	}
}
