package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context, flightID int64) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// scriptedRefs hands out codes in order and repeats the last one.
type scriptedRefs struct {
	mu    sync.Mutex
	codes []string
}

func (r *scriptedRefs) Generate() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := r.codes[0]
	if len(r.codes) > 1 {
		r.codes = r.codes[1:]
	}
	return code, nil
}

// failingGateway runs the real transaction but fails passenger inserts.
type failingGateway struct {
	inner repository.Gateway
}

func (g failingGateway) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return g.inner.InTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return fn(ctx, failingTx{Tx: tx})
	})
}

type failingTx struct {
	repository.Tx
}

func (failingTx) InsertPassengers(context.Context, []domain.Passenger) error {
	return errors.New("disk full")
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func addFlight(t *testing.T, store *repository.MemoryStore, rows, perRow, available int, fare string) domain.Flight {
	t.Helper()
	price, err := domain.ParseMoney(fare)
	require.NoError(t, err)
	f, err := store.AddFlight(domain.Flight{
		FlightNumber:   "TK101",
		Airline:        "Anadolu Air",
		FromCity:       "Istanbul",
		ToCity:         "Ankara",
		DepartureTime:  fixedNow.Add(48 * time.Hour),
		ArrivalTime:    fixedNow.Add(49 * time.Hour),
		Fare:           price,
		TotalSeats:     rows * perRow,
		AvailableSeats: available,
		Rows:           rows,
		SeatsPerRow:    perRow,
		Status:         domain.FlightStatusActive,
	})
	require.NoError(t, err)
	return f
}

func passenger(nationalID string) PassengerInput {
	return PassengerInput{
		FirstName:   "Ayse",
		LastName:    "Yilmaz",
		NationalID:  nationalID,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
	}
}

func newService(store *repository.MemoryStore, cache Cache, producer Producer, opts ...BookingServiceOption) *BookingService {
	opts = append([]BookingServiceOption{
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logger.Discard()),
	}, opts...)
	return NewBookingService(store, store.Bookings(), cache, producer, "booking_topic", opts...)
}

func availableSeats(t *testing.T, store *repository.MemoryStore, flightID int64) int {
	t.Helper()
	f, err := store.GetByID(context.Background(), flightID)
	require.NoError(t, err)
	return f.AvailableSeats
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	service := newService(store, mockCache, mockProducer, WithNotificationsTopic("notifications"))

	ctx := context.Background()
	mockCache.On("InvalidateFlights", mock.Anything, flight.ID).Return(nil).Once()
	mockProducer.On("Publish", mock.Anything, "booking_topic", mock.AnythingOfType("string"), mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()
	mockProducer.On("Publish", mock.Anything, "notifications", mock.AnythingOfType("string"), mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "guest@example.com",
		Passengers: []PassengerInput{passenger("10000000146"), passenger("12345678950")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "200.00", booking.TotalPrice.String())
	assert.Equal(t, 2, booking.PassengerCount)
	assert.Len(t, booking.Reference, 6)
	assert.Equal(t, fixedNow, booking.CreatedAt)
	assert.False(t, booking.Paid)
	require.Len(t, booking.Passengers, 2)
	assert.Equal(t, []string{"1A", "1B"}, booking.SeatLabels())
	assert.Equal(t, domain.SeatTypeWindow, booking.Passengers[0].SeatType)
	assert.Equal(t, domain.GenderFemale, booking.Passengers[0].Gender)
	assert.Equal(t, 8, availableSeats(t, store, flight.ID))

	stored, err := service.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference, stored.Reference)
	assert.Len(t, stored.Passengers, 2)
	for _, p := range stored.Passengers {
		assert.True(t, p.Active)
		assert.Equal(t, booking.ID, p.BookingID)
	}

	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_PendingPolicy(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	service := newService(store, nil, nil, WithPolicy(Policy{InitialStatus: domain.BookingStatusPending}))

	booking, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:   flight.ID,
		UserID:     7,
		Passengers: []PassengerInput{passenger("10000000146")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(7), booking.UserID)
}

func TestBookingService_CreateBooking_InsufficientInventory(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 2, "100.00")
	mockProducer := &MockProducer{}
	service := newService(store, nil, mockProducer)

	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "guest@example.com",
		Passengers: []PassengerInput{passenger("10000000146"), passenger("12345678950"), passenger("19090909018")},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	assert.Equal(t, 2, availableSeats(t, store, flight.ID))
	taken, err := store.TakenSeats(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Empty(t, taken)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_ValidationTouchesNothing(t *testing.T) {
	gateway := &MockGateway{}
	service := NewBookingService(gateway, nil, nil, nil, "", WithLogger(logger.Discard()), WithClock(func() time.Time { return fixedNow }))

	tooMany := make([]PassengerInput, 11)
	for i := range tooMany {
		tooMany[i] = passenger("10000000146")
	}

	tests := []struct {
		name  string
		input CreateBookingInput
		field string
		index int
	}{
		{
			name:  "no passengers",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co"},
			field: "passengers",
			index: -1,
		},
		{
			name:  "too many passengers",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co", Passengers: tooMany},
			field: "passengers",
			index: -1,
		},
		{
			name:  "no owner",
			input: CreateBookingInput{FlightID: 1, Passengers: []PassengerInput{passenger("10000000146")}},
			field: "email",
			index: -1,
		},
		{
			name:  "bad email",
			input: CreateBookingInput{FlightID: 1, Email: "not-an-email", Passengers: []PassengerInput{passenger("10000000146")}},
			field: "email",
			index: -1,
		},
		{
			name: "second passenger fails checksum",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co", Passengers: []PassengerInput{
				passenger("10000000146"), passenger("12345678901"),
			}},
			field: "national_id",
			index: 1,
		},
		{
			name: "duplicate national id",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co", Passengers: []PassengerInput{
				passenger("10000000146"), passenger("10000000146"),
			}},
			field: "national_id",
			index: 1,
		},
		{
			name: "unknown gender",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co", Passengers: []PassengerInput{
				{FirstName: "A", LastName: "B", NationalID: "10000000146", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Gender: "x"},
			}},
			field: "gender",
			index: 0,
		},
		{
			name: "birth date in the future",
			input: CreateBookingInput{FlightID: 1, Email: "a@b.co", Passengers: []PassengerInput{
				{FirstName: "A", LastName: "B", NationalID: "10000000146", DateOfBirth: fixedNow.Add(24 * time.Hour), Gender: "MALE"},
			}},
			field: "date_of_birth",
			index: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateBooking(context.Background(), tt.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.index, vErr.Index)
		})
	}

	gateway.AssertNotCalled(t, "InTx", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_FlightNotBookable(t *testing.T) {
	store := repository.NewMemoryStore()
	cancelled := addFlight(t, store, 1, 4, 4, "80.00")
	cancelled.Status = domain.FlightStatusCancelled
	_, err := store.AddFlight(cancelled)
	require.NoError(t, err)
	service := newService(store, nil, nil)

	input := CreateBookingInput{FlightID: cancelled.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("10000000146")}}
	_, err = service.CreateBooking(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFlightUnavailable)

	input.FlightID = 404
	_, err = service.CreateBooking(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_CreateBooking_ExplicitSeats(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	service := newService(store, nil, nil)
	ctx := context.Background()

	first := passenger("10000000146")
	first.Seat = "2c"
	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "a@b.co",
		Passengers: []PassengerInput{first, passenger("12345678950")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2C", "1A"}, booking.SeatLabels())
	assert.Equal(t, domain.SeatTypeAisle, booking.Passengers[0].SeatType)

	clash := passenger("19090909018")
	clash.Seat = "2C"
	_, err = service.CreateBooking(ctx, CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "b@b.co",
		Passengers: []PassengerInput{clash},
	})
	var conflict *domain.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "2C", conflict.Seat)
	assert.Equal(t, 8, availableSeats(t, store, flight.ID))

	unknown := passenger("19090909018")
	unknown.Seat = "9Z"
	_, err = service.CreateBooking(ctx, CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "b@b.co",
		Passengers: []PassengerInput{unknown},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_CreateBooking_LastSeatRace(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 1, 1, 1, "100.00")
	service := newService(store, nil, nil)

	ids := []string{"10000000146", "12345678950"}
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			<-start
			_, errs[i] = service.CreateBooking(context.Background(), CreateBookingInput{
				FlightID:   flight.ID,
				Email:      "race@example.com",
				Passengers: []PassengerInput{passenger(id)},
			})
		}(i, id)
	}
	close(start)
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientInventory):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, availableSeats(t, store, flight.ID))
}

func TestBookingService_CreateBooking_ManyConcurrentNeverOversell(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 1, 3, 3, "100.00")
	service := newService(store, nil, nil)

	ids := []string{
		"10000000146", "12345678950", "19090909018", "10000000078",
		"20000000282", "30000000328", "40000000464", "51234567890",
	}
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), CreateBookingInput{
				FlightID:   flight.ID,
				Email:      "crowd@example.com",
				Passengers: []PassengerInput{passenger(id)},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 0, availableSeats(t, store, flight.ID))
}

func TestBookingService_CreateBooking_RollsBackOnFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	service := NewBookingService(failingGateway{inner: store}, store.Bookings(), nil, nil, "",
		WithLogger(logger.Discard()), WithClock(func() time.Time { return fixedNow }))

	_, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:   flight.ID,
		UserID:     3,
		Passengers: []PassengerInput{passenger("10000000146"), passenger("12345678950")},
	})

	var txErr *domain.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.ErrorIs(t, err, domain.ErrTransaction)
	assert.Equal(t, "create booking", txErr.Op)
	assert.Equal(t, 10, availableSeats(t, store, flight.ID))

	bookings, err := service.ListUserBookings(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingService_CreateBooking_ReferenceCollisionRetries(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	refs := &scriptedRefs{codes: []string{"AAAAAA", "AAAAAA", "AAAAAA", "BBBBBB"}}
	service := newService(store, nil, nil, WithReferenceGenerator(refs))
	ctx := context.Background()

	first, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("10000000146")}})
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", first.Reference)

	second, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("12345678950")}})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", second.Reference)
	assert.Equal(t, []string{"1B"}, second.SeatLabels())
	assert.Equal(t, 8, availableSeats(t, store, flight.ID))
}

func TestBookingService_CreateBooking_ReferenceExhausted(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	refs := &scriptedRefs{codes: []string{"AAAAAA"}}
	service := newService(store, nil, nil, WithReferenceGenerator(refs), WithPolicy(Policy{ReferenceAttempts: 3}))
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("10000000146")}})
	require.NoError(t, err)

	_, err = service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("12345678950")}})
	assert.ErrorIs(t, err, domain.ErrReferenceExhausted)
	assert.Equal(t, 9, availableSeats(t, store, flight.ID))
}

func TestBookingService_CreateBooking_SideEffectFailuresAreNotSurfaced(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}
	service := newService(store, mockCache, mockProducer)

	mockCache.On("InvalidateFlights", mock.Anything, flight.ID).Return(errors.New("redis down")).Once()
	mockProducer.On("Publish", mock.Anything, "booking_topic", mock.Anything, mock.Anything).Return(errors.New("kafka down")).Once()

	booking, err := service.CreateBooking(context.Background(), CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "a@b.co",
		Passengers: []PassengerInput{passenger("10000000146")},
	})

	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, 9, availableSeats(t, store, flight.ID))
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelBooking(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	mockProducer := &MockProducer{}
	service := newService(store, nil, mockProducer)
	ctx := context.Background()

	mockProducer.On("Publish", mock.Anything, "booking_topic", mock.Anything, mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCreated
	})).Return(nil).Once()
	mockProducer.On("Publish", mock.Anything, "booking_topic", mock.Anything, mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCancelled && e.Status == "CANCELLED"
	})).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		FlightID:   flight.ID,
		Email:      "a@b.co",
		Passengers: []PassengerInput{passenger("10000000146"), passenger("12345678950")},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, availableSeats(t, store, flight.ID))

	cancelled, err := service.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, fixedNow, *cancelled.CancelledAt)
	assert.Equal(t, 10, availableSeats(t, store, flight.ID))

	stored, err := service.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	for _, p := range stored.Passengers {
		assert.False(t, p.Active)
	}

	// A second cancel is an idempotent success and leaves the flight alone.
	again, err := service.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, again.Status)
	assert.Equal(t, 10, availableSeats(t, store, flight.ID))

	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelBooking_FreesSeatForRebooking(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 1, 1, 1, "100.00")
	service := newService(store, nil, nil)
	ctx := context.Background()

	input := CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("10000000146")}}
	booking, err := service.CreateBooking(ctx, input)
	require.NoError(t, err)

	_, err = service.CreateBooking(ctx, input)
	require.ErrorIs(t, err, domain.ErrInsufficientInventory)

	_, err = service.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	rebooked, err := service.CreateBooking(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, []string{"1A"}, rebooked.SeatLabels())
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newService(store, nil, nil)

	_, err := service.CancelBooking(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_ConfirmAndPay(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	service := newService(store, nil, nil, WithPolicy(Policy{InitialStatus: domain.BookingStatusPending}))
	ctx := context.Background()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, Email: "a@b.co", Passengers: []PassengerInput{passenger("10000000146")}})
	require.NoError(t, err)

	_, err = service.MarkPaid(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	confirmed, err := service.ConfirmBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)

	_, err = service.ConfirmBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	paid, err := service.MarkPaid(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, fixedNow, *paid.PaidAt)

	_, err = service.MarkPaid(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	_, err = service.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	_, err = service.MarkPaid(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = service.ConfirmBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_Lookups(t *testing.T) {
	store := repository.NewMemoryStore()
	flight := addFlight(t, store, 2, 5, 10, "100.00")
	service := newService(store, nil, nil)
	ctx := context.Background()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: flight.ID, UserID: 5, Passengers: []PassengerInput{passenger("10000000146")}})
	require.NoError(t, err)

	byRef, err := service.GetBookingByReference(ctx, " "+booking.Reference+" ")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, byRef.ID)

	_, err = service.GetBookingByReference(ctx, "bad!")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.GetBookingByReference(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := service.ListUserBookings(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, booking.Reference, list[0].Reference)

	_, err = service.ListUserBookings(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
