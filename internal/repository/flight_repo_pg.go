package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, mapError(err, "list flights", "")
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err, "get flight", "")
	}
	return f, nil
}

func (r *PGFlightRepository) TakenSeats(ctx context.Context, flightID int64) ([]string, error) {
	return takenSeats(ctx, r.db, flightID)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
