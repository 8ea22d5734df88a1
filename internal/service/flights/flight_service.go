package flights

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/seats"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	SeatMap(ctx context.Context, id int64) (*SeatMap, error)
}

// FlightCache returns (nil, nil) on a miss.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
}

type SeatMap struct {
	Flight domain.Flight `json:"flight"`
	Seats  []seats.Seat  `json:"seats"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   *logrus.Logger
}

// NewFlightService builds the read side for flights. cache may be nil.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log *logrus.Logger) *FlightService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.log.WithError(err).Warn("flights cache read failed")
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.WithError(err).Warn("flights cache write failed")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	if s.cache != nil {
		cached, err := s.cache.GetFlight(ctx, id)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.log.WithError(err).WithField("flight_id", id).Warn("flight cache read failed")
		}
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.log.WithError(err).WithField("flight_id", id).Warn("flight cache write failed")
		}
	}
	return flight, nil
}

// SeatMap reads the flight and its held seats straight from the store,
// bypassing the cache.
func (s *FlightService) SeatMap(ctx context.Context, id int64) (*SeatMap, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.TakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	inv, err := seats.NewInventory(flight, taken)
	if err != nil {
		return nil, err
	}
	return &SeatMap{Flight: *flight, Seats: inv.Occupancy()}, nil
}

var _ FlightUseCase = (*FlightService)(nil)
