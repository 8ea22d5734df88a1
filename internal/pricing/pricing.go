package pricing

import (
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Total returns fare x passengers in integer cents.
func Total(fare domain.Money, passengers int) (domain.Money, error) {
	if fare < 0 {
		return 0, fmt.Errorf("negative fare %s", fare)
	}
	if passengers < 0 {
		return 0, fmt.Errorf("negative passenger count %d", passengers)
	}
	total, err := fare.Mul(passengers)
	if err != nil {
		return 0, fmt.Errorf("price %d x %s: %w", passengers, fare, err)
	}
	return total, nil
}
