package domain

import (
	"fmt"
	"time"
)

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "ACTIVE"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
)

type Flight struct {
	ID             int64        `json:"id"`
	FlightNumber   string       `json:"flight_number"`
	Airline        string       `json:"airline"`
	FromCity       string       `json:"from_city"`
	ToCity         string       `json:"to_city"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	Fare           Money        `json:"fare"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	Rows           int          `json:"rows"`
	SeatsPerRow    int          `json:"seats_per_row"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Validate checks the seat counters against the layout.
func (f *Flight) Validate() error {
	if f.Rows <= 0 || f.SeatsPerRow <= 0 {
		return fmt.Errorf("flight %d: invalid seat layout %dx%d", f.ID, f.Rows, f.SeatsPerRow)
	}
	if f.TotalSeats != f.Rows*f.SeatsPerRow {
		return fmt.Errorf("flight %d: total seats %d do not match layout %dx%d", f.ID, f.TotalSeats, f.Rows, f.SeatsPerRow)
	}
	if f.AvailableSeats < 0 || f.AvailableSeats > f.TotalSeats {
		return fmt.Errorf("flight %d: available seats %d out of range [0,%d]", f.ID, f.AvailableSeats, f.TotalSeats)
	}
	return nil
}

func (f *Flight) Bookable() bool {
	return f.Status == FlightStatusActive
}
