package seats

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Inventory is a request-scoped view of one flight's seats. It is built
// from a flight row locked by the caller's transaction together with the
// labels already held by active passengers; reservations made on it only
// become durable when that transaction commits.
type Inventory struct {
	flightID  int64
	perRow    int
	total     int
	available int
	labels    []string
	index     map[string]int
	taken     map[string]bool
}

func NewInventory(flight *domain.Flight, taken []string) (*Inventory, error) {
	if err := flight.Validate(); err != nil {
		return nil, err
	}
	if flight.SeatsPerRow > MaxSeatsPerRow {
		return nil, fmt.Errorf("flight %d: %d seats per row exceeds %d", flight.ID, flight.SeatsPerRow, MaxSeatsPerRow)
	}

	inv := &Inventory{
		flightID:  flight.ID,
		perRow:    flight.SeatsPerRow,
		total:     flight.TotalSeats,
		available: flight.AvailableSeats,
		labels:    Map(flight.Rows, flight.SeatsPerRow),
		taken:     make(map[string]bool, len(taken)),
	}
	inv.index = make(map[string]int, len(inv.labels))
	for i, l := range inv.labels {
		inv.index[l] = i
	}
	for _, l := range taken {
		if _, ok := inv.index[l]; !ok {
			return nil, fmt.Errorf("flight %d: taken seat %q is outside the layout", flight.ID, l)
		}
		inv.taken[l] = true
	}
	if inv.available > inv.total-len(inv.taken) {
		return nil, fmt.Errorf("flight %d: %d seats available but only %d unassigned", flight.ID, inv.available, inv.total-len(inv.taken))
	}
	return inv, nil
}

func (inv *Inventory) Available() int { return inv.available }

func (inv *Inventory) Total() int { return inv.total }

func (inv *Inventory) IsTaken(label string) bool { return inv.taken[label] }

// Reserve claims count unassigned seats in seat-map order.
func (inv *Inventory) Reserve(count int) ([]string, error) {
	if count <= 0 {
		return nil, domain.NewValidationError("passengers", "at least one seat must be reserved")
	}
	return inv.ReserveSeats(make([]string, count))
}

// ReserveSeats claims one seat per entry of choices. An empty entry is
// auto-assigned the first free seat in map order; a non-empty entry must
// name a free seat of the layout.
func (inv *Inventory) ReserveSeats(choices []string) ([]string, error) {
	count := len(choices)
	if count <= 0 {
		return nil, domain.NewValidationError("passengers", "at least one seat must be reserved")
	}
	if inv.available < count {
		return nil, fmt.Errorf("%w: flight %d has %d seats left, %d requested", domain.ErrInsufficientInventory, inv.flightID, inv.available, count)
	}

	requested := make(map[string]bool, count)
	assigned := make([]string, count)
	for i, choice := range choices {
		if choice == "" {
			continue
		}
		label := strings.ToUpper(strings.TrimSpace(choice))
		if _, ok := inv.index[label]; !ok {
			return nil, domain.NewPassengerError(i, "seat", fmt.Sprintf("seat %q does not exist on this flight", choice))
		}
		if inv.taken[label] || requested[label] {
			return nil, &domain.SeatConflictError{Seat: label}
		}
		requested[label] = true
		assigned[i] = label
	}

	next := 0
	for i := range assigned {
		if assigned[i] != "" {
			continue
		}
		for next < len(inv.labels) && (inv.taken[inv.labels[next]] || requested[inv.labels[next]]) {
			next++
		}
		if next == len(inv.labels) {
			return nil, fmt.Errorf("%w: flight %d has no unassigned seats left", domain.ErrInsufficientInventory, inv.flightID)
		}
		assigned[i] = inv.labels[next]
		requested[inv.labels[next]] = true
		next++
	}

	for _, l := range assigned {
		inv.taken[l] = true
	}
	inv.available -= count
	return assigned, nil
}

// Release frees the given seats. Labels that are not held are ignored, so
// the counter never exceeds the total.
func (inv *Inventory) Release(labels []string) int {
	freed := 0
	for _, l := range labels {
		if !inv.taken[l] {
			continue
		}
		delete(inv.taken, l)
		if inv.available < inv.total {
			inv.available++
			freed++
		}
	}
	return freed
}

// Occupancy returns every seat of the layout with its assignment state.
func (inv *Inventory) Occupancy() []Seat {
	out := make([]Seat, 0, len(inv.labels))
	for _, l := range inv.labels {
		out = append(out, Seat{Label: l, Type: TypeOf(l, inv.perRow), Taken: inv.taken[l]})
	}
	return out
}

type Seat struct {
	Label string          `json:"label"`
	Type  domain.SeatType `json:"type"`
	Taken bool            `json:"taken"`
}
