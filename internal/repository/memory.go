package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// MemoryStore keeps flights, bookings and passengers in process. Every
// transaction holds the store lock for its whole duration and works on a
// copy that replaces the live state only on success.
type MemoryStore struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	flights         map[int64]domain.Flight
	bookings        map[int64]domain.Booking
	passengers      map[int64]domain.Passenger
	nextFlightID    int64
	nextBookingID   int64
	nextPassengerID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memState{
		flights:    make(map[int64]domain.Flight),
		bookings:   make(map[int64]domain.Booking),
		passengers: make(map[int64]domain.Passenger),
	}}
}

// AddFlight stores a flight, assigning an ID when none is set.
func (s *MemoryStore) AddFlight(f domain.Flight) (domain.Flight, error) {
	if err := f.Validate(); err != nil {
		return domain.Flight{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == 0 {
		s.state.nextFlightID++
		f.ID = s.state.nextFlightID
	} else if f.ID > s.state.nextFlightID {
		s.state.nextFlightID = f.ID
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
		f.UpdatedAt = f.CreatedAt
	}
	s.state.flights[f.ID] = f
	return f, nil
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &domain.TransactionError{Op: "begin", Err: err}
	}
	staged := s.state.clone()
	if err := fn(ctx, &memTx{state: &staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &domain.TransactionError{Op: "commit", Err: err}
	}
	s.state = staged
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flights := make([]domain.Flight, 0, len(s.state.flights))
	for _, f := range s.state.flights {
		flights = append(flights, f)
	}
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].DepartureTime.Equal(flights[j].DepartureTime) {
			return flights[i].ID < flights[j].ID
		}
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.state.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (s *MemoryStore) TakenSeats(_ context.Context, flightID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.takenSeats(flightID), nil
}

// Bookings returns a BookingRepository view of the store.
func (s *MemoryStore) Bookings() BookingRepository {
	return memBookings{s}
}

type memBookings struct {
	s *MemoryStore
}

func (r memBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.state.booking(id)
}

func (r memBookings) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, b := range r.s.state.bookings {
		if b.Reference == reference {
			return r.s.state.booking(id)
		}
	}
	return nil, fmt.Errorf("booking %s: %w", reference, domain.ErrNotFound)
}

func (r memBookings) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Booking, 0)
	for id, b := range r.s.state.bookings {
		if b.UserID == userID {
			full, _ := r.s.state.booking(id)
			out = append(out, *full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memTx struct {
	state *memState
}

func (t *memTx) LockFlight(_ context.Context, flightID int64) (*domain.Flight, error) {
	f, ok := t.state.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", flightID, domain.ErrNotFound)
	}
	return &f, nil
}

func (t *memTx) TakenSeats(_ context.Context, flightID int64) ([]string, error) {
	return t.state.takenSeats(flightID), nil
}

func (t *memTx) SaveFlightSeats(_ context.Context, flightID int64, available int) error {
	f, ok := t.state.flights[flightID]
	if !ok {
		return fmt.Errorf("flight %d: %w", flightID, domain.ErrNotFound)
	}
	if available < 0 || available > f.TotalSeats {
		return fmt.Errorf("flight %d: available seats %d violate [0,%d]", flightID, available, f.TotalSeats)
	}
	f.AvailableSeats = available
	f.UpdatedAt = time.Now().UTC()
	t.state.flights[flightID] = f
	return nil
}

func (t *memTx) InsertBooking(_ context.Context, b *domain.Booking) error {
	for _, existing := range t.state.bookings {
		if existing.Reference == b.Reference {
			return domain.ErrReferenceCollision
		}
	}
	t.state.nextBookingID++
	b.ID = t.state.nextBookingID
	stored := *b
	stored.Passengers = nil
	t.state.bookings[b.ID] = stored
	return nil
}

func (t *memTx) InsertPassengers(_ context.Context, passengers []domain.Passenger) error {
	for i := range passengers {
		p := &passengers[i]
		for _, existing := range t.state.passengers {
			if existing.Active && existing.FlightID == p.FlightID && existing.SeatLabel == p.SeatLabel {
				return &domain.SeatConflictError{Seat: p.SeatLabel}
			}
		}
		t.state.nextPassengerID++
		p.ID = t.state.nextPassengerID
		p.Active = true
		t.state.passengers[p.ID] = *p
	}
	return nil
}

func (t *memTx) LockBooking(_ context.Context, bookingID int64) (*domain.Booking, error) {
	return t.state.booking(bookingID)
}

func (t *memTx) UpdateBooking(_ context.Context, b *domain.Booking) error {
	if _, ok := t.state.bookings[b.ID]; !ok {
		return fmt.Errorf("booking %d: %w", b.ID, domain.ErrNotFound)
	}
	stored := *b
	stored.Passengers = nil
	t.state.bookings[b.ID] = stored
	return nil
}

func (t *memTx) DeactivatePassengers(_ context.Context, bookingID int64) ([]string, error) {
	released := make([]string, 0)
	for _, id := range t.state.passengerIDs(bookingID) {
		p := t.state.passengers[id]
		if !p.Active {
			continue
		}
		p.Active = false
		t.state.passengers[id] = p
		released = append(released, p.SeatLabel)
	}
	return released, nil
}

func (st *memState) clone() memState {
	c := memState{
		flights:         make(map[int64]domain.Flight, len(st.flights)),
		bookings:        make(map[int64]domain.Booking, len(st.bookings)),
		passengers:      make(map[int64]domain.Passenger, len(st.passengers)),
		nextFlightID:    st.nextFlightID,
		nextBookingID:   st.nextBookingID,
		nextPassengerID: st.nextPassengerID,
	}
	for k, v := range st.flights {
		c.flights[k] = v
	}
	for k, v := range st.bookings {
		c.bookings[k] = v
	}
	for k, v := range st.passengers {
		c.passengers[k] = v
	}
	return c
}

func (st *memState) passengerIDs(bookingID int64) []int64 {
	ids := make([]int64, 0)
	for id, p := range st.passengers {
		if p.BookingID == bookingID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (st *memState) booking(id int64) (*domain.Booking, error) {
	b, ok := st.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	ids := st.passengerIDs(id)
	b.Passengers = make([]domain.Passenger, 0, len(ids))
	for _, pid := range ids {
		b.Passengers = append(b.Passengers, st.passengers[pid])
	}
	return &b, nil
}

func (st *memState) takenSeats(flightID int64) []string {
	ids := make([]int64, 0)
	for id, p := range st.passengers {
		if p.Active && p.FlightID == flightID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	taken := make([]string, 0, len(ids))
	for _, id := range ids {
		taken = append(taken, st.passengers[id].SeatLabel)
	}
	return taken
}

var (
	_ Gateway           = (*MemoryStore)(nil)
	_ FlightRepository  = (*MemoryStore)(nil)
	_ BookingRepository = memBookings{}
	_ Tx                = (*memTx)(nil)
)
