package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/identity"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/Domenick1991/flightbooking/internal/reference"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/seats"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetBookingByReference(ctx context.Context, ref string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	ConfirmBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id int64) (*domain.Booking, error)
}

// Cache is the part of the flights cache the engine touches after a commit
// changes a flight's seat count.
type Cache interface {
	InvalidateFlights(ctx context.Context, flightID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReferenceGenerator interface {
	Generate() (string, error)
}

type BookingService struct {
	gateway            repository.Gateway
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	refs               ReferenceGenerator
	log                *logrus.Logger
	now                func() time.Time
	bookingTopic       string
	notificationsTopic string
	maxPassengers      int
	referenceAttempts  int
	initialStatus      domain.BookingStatus
	txTimeout          time.Duration
}

type PassengerInput struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	NationalID  string    `json:"national_id"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	// Seat is an explicit seat label; empty means auto-assign.
	Seat string `json:"seat,omitempty"`
}

type CreateBookingInput struct {
	FlightID   int64            `json:"flight_id"`
	UserID     int64            `json:"user_id,omitempty"`
	Email      string           `json:"email,omitempty"`
	Passengers []PassengerInput `json:"passengers"`
}

type Policy struct {
	MaxPassengers     int
	ReferenceAttempts int
	InitialStatus     domain.BookingStatus
	TxTimeout         time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxPassengers:     10,
		ReferenceAttempts: 5,
		InitialStatus:     domain.BookingStatusConfirmed,
		TxTimeout:         5 * time.Second,
	}
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log *logrus.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithReferenceGenerator(g ReferenceGenerator) BookingServiceOption {
	return func(s *BookingService) {
		s.refs = g
	}
}

func WithPolicy(p Policy) BookingServiceOption {
	return func(s *BookingService) {
		def := DefaultPolicy()
		if p.MaxPassengers > 0 {
			s.maxPassengers = p.MaxPassengers
		} else {
			s.maxPassengers = def.MaxPassengers
		}
		if p.ReferenceAttempts > 0 {
			s.referenceAttempts = p.ReferenceAttempts
		} else {
			s.referenceAttempts = def.ReferenceAttempts
		}
		if p.InitialStatus == domain.BookingStatusPending || p.InitialStatus == domain.BookingStatusConfirmed {
			s.initialStatus = p.InitialStatus
		} else {
			s.initialStatus = def.InitialStatus
		}
		if p.TxTimeout > 0 {
			s.txTimeout = p.TxTimeout
		} else {
			s.txTimeout = def.TxTimeout
		}
	}
}

// NewBookingService wires the engine. cache and producer may be nil.
func NewBookingService(
	gateway repository.Gateway,
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	def := DefaultPolicy()
	service := &BookingService{
		gateway:           gateway,
		bookings:          bookings,
		cache:             cache,
		producer:          producer,
		refs:              reference.NewGenerator(),
		log:               logrus.StandardLogger(),
		now:               func() time.Time { return time.Now().UTC() },
		bookingTopic:      bookingTopic,
		maxPassengers:     def.MaxPassengers,
		referenceAttempts: def.ReferenceAttempts,
		initialStatus:     def.InitialStatus,
		txTimeout:         def.TxTimeout,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	passengers, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	choices := make([]string, len(input.Passengers))
	for i, p := range input.Passengers {
		choices[i] = p.Seat
	}

	var created *domain.Booking
	for attempt := 1; attempt <= s.referenceAttempts; attempt++ {
		created, err = s.createOnce(ctx, input, passengers, choices)
		if !errors.Is(err, domain.ErrReferenceCollision) {
			break
		}
		s.log.WithFields(logrus.Fields{
			"flight_id": input.FlightID,
			"attempt":   attempt,
		}).Warn("booking reference collision, retrying")
	}
	if errors.Is(err, domain.ErrReferenceCollision) {
		return nil, fmt.Errorf("%w after %d attempts", domain.ErrReferenceExhausted, s.referenceAttempts)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"flight_id":  input.FlightID,
			"passengers": len(input.Passengers),
			"error":      err,
		}).Info("booking rejected")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": created.ID,
		"reference":  created.Reference,
		"flight_id":  created.FlightID,
		"seats":      created.SeatLabels(),
	}).Info("booking created")

	s.afterCommit(ctx, kafka.EventBookingCreated, created, true)
	return created, nil
}

// createOnce runs one booking attempt in its own transaction. Seats
// reserved on the inventory are released by the rollback when any step
// fails.
func (s *BookingService) createOnce(ctx context.Context, input CreateBookingInput, passengers []domain.Passenger, choices []string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var booking *domain.Booking
	err := s.gateway.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		flight, err := tx.LockFlight(ctx, input.FlightID)
		if err != nil {
			return err
		}
		if !flight.Bookable() {
			return fmt.Errorf("%w: flight %d is %s", domain.ErrFlightUnavailable, flight.ID, flight.Status)
		}

		taken, err := tx.TakenSeats(ctx, flight.ID)
		if err != nil {
			return err
		}
		inv, err := seats.NewInventory(flight, taken)
		if err != nil {
			return err
		}
		labels, err := inv.ReserveSeats(choices)
		if err != nil {
			return err
		}

		total, err := pricing.Total(flight.Fare, len(passengers))
		if err != nil {
			return err
		}
		ref, err := s.refs.Generate()
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}

		now := s.now()
		b := &domain.Booking{
			Reference:      ref,
			UserID:         input.UserID,
			Email:          input.Email,
			FlightID:       flight.ID,
			PassengerCount: len(passengers),
			TotalPrice:     total,
			Status:         s.initialStatus,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}

		rows := make([]domain.Passenger, len(passengers))
		for i, p := range passengers {
			p.BookingID = b.ID
			p.FlightID = flight.ID
			p.SeatLabel = labels[i]
			p.SeatType = seats.TypeOf(labels[i], flight.SeatsPerRow)
			rows[i] = p
		}
		if err := tx.InsertPassengers(ctx, rows); err != nil {
			return err
		}
		if err := tx.SaveFlightSeats(ctx, flight.ID, inv.Available()); err != nil {
			return err
		}

		b.Passengers = rows
		booking = b
		return nil
	})
	if err != nil {
		return nil, asTransactionError("create booking", err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) GetBookingByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if !reference.Valid(ref) {
		return nil, domain.NewValidationError("reference", "must be 6 uppercase letters or digits")
	}
	return s.bookings.GetByReference(ctx, ref)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "must be positive")
	}
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	updated, err := s.updateBooking(ctx, "confirm booking", id, func(b *domain.Booking) error {
		return b.Transition(domain.BookingStatusConfirmed, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("booking_id", id).Info("booking confirmed")
	s.afterCommit(ctx, kafka.EventBookingConfirmed, updated, false)
	return updated, nil
}

func (s *BookingService) MarkPaid(ctx context.Context, id int64) (*domain.Booking, error) {
	updated, err := s.updateBooking(ctx, "mark paid", id, func(b *domain.Booking) error {
		return b.MarkPaid(s.now())
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("booking_id", id).Info("booking paid")
	s.afterCommit(ctx, kafka.EventBookingPaid, updated, false)
	return updated, nil
}

// CancelBooking cancels a booking and returns its seats to the flight.
// Cancelling a booking that is already cancelled succeeds without
// touching the flight.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var (
		result    *domain.Booking
		cancelled bool
	)
	err := s.gateway.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if b.Status == domain.BookingStatusCancelled {
			result = b
			return nil
		}

		flight, err := tx.LockFlight(ctx, b.FlightID)
		if err != nil {
			return err
		}
		taken, err := tx.TakenSeats(ctx, flight.ID)
		if err != nil {
			return err
		}
		inv, err := seats.NewInventory(flight, taken)
		if err != nil {
			return err
		}

		if err := b.Transition(domain.BookingStatusCancelled, s.now()); err != nil {
			return err
		}
		released, err := tx.DeactivatePassengers(ctx, b.ID)
		if err != nil {
			return err
		}
		inv.Release(released)
		if err := tx.SaveFlightSeats(ctx, flight.ID, inv.Available()); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		for i := range b.Passengers {
			b.Passengers[i].Active = false
		}
		result = b
		cancelled = true
		return nil
	})
	if err != nil {
		return nil, asTransactionError("cancel booking", err)
	}

	if !cancelled {
		s.log.WithField("booking_id", id).Debug("booking already cancelled")
		return result, nil
	}
	s.log.WithFields(logrus.Fields{
		"booking_id": id,
		"flight_id":  result.FlightID,
		"released":   result.SeatLabels(),
	}).Info("booking cancelled")
	s.afterCommit(ctx, kafka.EventBookingCancelled, result, true)
	return result, nil
}

func (s *BookingService) updateBooking(ctx context.Context, op string, id int64, apply func(*domain.Booking) error) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var result *domain.Booking
	err := s.gateway.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(b); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, asTransactionError(op, err)
	}
	return result, nil
}

func (s *BookingService) validate(input CreateBookingInput) ([]domain.Passenger, error) {
	if len(input.Passengers) == 0 {
		return nil, domain.NewValidationError("passengers", "at least one passenger is required")
	}
	if len(input.Passengers) > s.maxPassengers {
		return nil, domain.NewValidationError("passengers", fmt.Sprintf("at most %d passengers per booking", s.maxPassengers))
	}
	if input.FlightID <= 0 {
		return nil, domain.NewValidationError("flight_id", "must be positive")
	}
	if input.UserID < 0 {
		return nil, domain.NewValidationError("user_id", "must not be negative")
	}
	if input.UserID == 0 && strings.TrimSpace(input.Email) == "" {
		return nil, domain.NewValidationError("email", "either user_id or email is required")
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return nil, domain.NewValidationError("email", "is not a valid address")
		}
	}

	today := s.now()
	seen := make(map[string]int, len(input.Passengers))
	out := make([]domain.Passenger, len(input.Passengers))
	for i, p := range input.Passengers {
		if strings.TrimSpace(p.FirstName) == "" {
			return nil, domain.NewPassengerError(i, "first_name", "is required")
		}
		if strings.TrimSpace(p.LastName) == "" {
			return nil, domain.NewPassengerError(i, "last_name", "is required")
		}
		if !identity.Validate(p.NationalID) {
			return nil, domain.NewPassengerError(i, "national_id", "is not a valid national identity number")
		}
		if prev, ok := seen[p.NationalID]; ok {
			return nil, domain.NewPassengerError(i, "national_id", fmt.Sprintf("duplicates passenger %d", prev))
		}
		seen[p.NationalID] = i
		if p.DateOfBirth.IsZero() || p.DateOfBirth.After(today) {
			return nil, domain.NewPassengerError(i, "date_of_birth", "must be a past date")
		}
		gender := domain.Gender(strings.ToUpper(p.Gender))
		if !gender.Valid() {
			return nil, domain.NewPassengerError(i, "gender", "must be MALE, FEMALE or OTHER")
		}
		out[i] = domain.Passenger{
			FirstName:   strings.TrimSpace(p.FirstName),
			LastName:    strings.TrimSpace(p.LastName),
			NationalID:  p.NationalID,
			DateOfBirth: p.DateOfBirth,
			Gender:      gender,
		}
	}
	return out, nil
}

// afterCommit runs side effects of a committed change. Failures are logged
// and never returned: the booking is already durable.
func (s *BookingService) afterCommit(ctx context.Context, eventType string, b *domain.Booking, seatsChanged bool) {
	fields := logrus.Fields{"booking_id": b.ID, "event": eventType}

	if seatsChanged && s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx, b.FlightID); err != nil {
			s.log.WithFields(fields).WithError(err).Warn("failed to invalidate flights cache")
		}
	}
	if err := s.publish(ctx, eventType, b); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("failed to publish booking event")
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.NewBookingEvent(eventType, b, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, b.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.Reference, event)
	}
	return nil
}

// asTransactionError keeps domain errors as they are and wraps everything
// else as a retryable transaction failure.
func asTransactionError(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	return &domain.TransactionError{Op: op, Err: err}
}

var _ BookingUseCase = (*BookingService)(nil)
