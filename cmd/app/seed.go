package main

import (
	"fmt"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

// seedFlights loads configured flights into the in-memory store with every
// seat available.
func seedFlights(store *repository.MemoryStore, seeds []config.FlightSeed) error {
	for i, s := range seeds {
		fare, err := domain.ParseMoney(s.Fare)
		if err != nil {
			return fmt.Errorf("seed flight %d (%s): fare: %w", i, s.FlightNumber, err)
		}
		total := s.Rows * s.SeatsPerRow
		if _, err := store.AddFlight(domain.Flight{
			FlightNumber:   s.FlightNumber,
			Airline:        s.Airline,
			FromCity:       s.FromCity,
			ToCity:         s.ToCity,
			DepartureTime:  s.DepartureTime,
			ArrivalTime:    s.ArrivalTime,
			Fare:           fare,
			TotalSeats:     total,
			AvailableSeats: total,
			Rows:           s.Rows,
			SeatsPerRow:    s.SeatsPerRow,
			Status:         domain.FlightStatusActive,
		}); err != nil {
			return fmt.Errorf("seed flight %d (%s): %w", i, s.FlightNumber, err)
		}
	}
	return nil
}
