package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notifications. Delivery is a structured log
// line; the message body is what a mail transport would send.
type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Email == "" {
		s.log.WithFields(logrus.Fields{
			"reference": event.Reference,
			"event":     event.Type,
		}).Debug("no contact email on booking, skipping notification")
		return nil
	}

	subject, body := Compose(event)
	s.log.WithFields(logrus.Fields{
		"to":        event.Email,
		"subject":   subject,
		"reference": event.Reference,
		"event_id":  event.ID,
	}).Info(body)
	return nil
}

// Compose renders the subject and body for an event.
func Compose(event kafka.BookingEvent) (string, string) {
	var subject string
	switch event.Type {
	case kafka.EventBookingCreated:
		subject = fmt.Sprintf("Booking %s received", event.Reference)
	case kafka.EventBookingConfirmed:
		subject = fmt.Sprintf("Booking %s confirmed", event.Reference)
	case kafka.EventBookingPaid:
		subject = fmt.Sprintf("Payment received for booking %s", event.Reference)
	case kafka.EventBookingCancelled:
		subject = fmt.Sprintf("Booking %s cancelled", event.Reference)
	default:
		subject = fmt.Sprintf("Booking %s updated", event.Reference)
	}

	body := fmt.Sprintf("Flight %d, %d passenger(s), seats %s, total %s, status %s.",
		event.FlightID, event.PassengerCount, strings.Join(event.Seats, ", "), event.TotalPrice, event.Status)
	return subject, body
}
