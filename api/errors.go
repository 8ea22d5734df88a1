package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFlightUnavailable),
		errors.Is(err, domain.ErrInsufficientInventory),
		errors.Is(err, domain.ErrSeatConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReferenceExhausted),
		errors.Is(err, domain.ErrTransaction):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		body["field"] = vErr.Field
		if vErr.Index >= 0 {
			body["passenger"] = vErr.Index
		}
	}
	var seatErr *domain.SeatConflictError
	if errors.As(err, &seatErr) {
		body["seat"] = seatErr.Seat
	}

	switch status {
	case http.StatusServiceUnavailable:
		c.Header("Retry-After", "1")
	case http.StatusInternalServerError:
		_ = c.Error(err)
		body["error"] = "internal error"
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string, fields []fieldError) {
	body := gin.H{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}
