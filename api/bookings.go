package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service   booking.BookingUseCase
	validator *validator.Validate
}

type passengerRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	NationalID  string `json:"national_id" validate:"required,national_id"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER male female other"`
	Seat        string `json:"seat,omitempty" validate:"omitempty,max=4,alphanum"`
}

type createBookingRequest struct {
	FlightID   int64              `json:"flight_id" validate:"required,gt=0"`
	UserID     int64              `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	Email      string             `json:"email,omitempty" validate:"required_without=UserID,omitempty,email"`
	Passengers []passengerRequest `json:"passengers" validate:"required,min=1,dive"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service, validator: NewValidator()}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.GET("/ref/:reference", h.getByReference)
	router.PUT("/:id/confirm", h.confirm)
	router.PUT("/:id/pay", h.pay)
	router.DELETE("/:id", h.cancel)
}

// RegisterUsers mounts the per-user listing under a users group.
func (h *BookingHandler) RegisterUsers(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.listByUser)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error(), nil)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		msg, fields := describeValidation(err)
		badRequest(c, msg, fields)
		return
	}

	input := booking.CreateBookingInput{
		FlightID:   req.FlightID,
		UserID:     req.UserID,
		Email:      req.Email,
		Passengers: make([]booking.PassengerInput, len(req.Passengers)),
	}
	for i, p := range req.Passengers {
		dob, err := time.Parse(dateLayout, p.DateOfBirth)
		if err != nil {
			writeError(c, domain.NewPassengerError(i, "date_of_birth", "must be YYYY-MM-DD"))
			return
		}
		input.Passengers[i] = booking.PassengerInput{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			NationalID:  p.NationalID,
			DateOfBirth: dob,
			Gender:      p.Gender,
			Seat:        p.Seat,
		}
	}

	created, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) getByReference(c *gin.Context) {
	b, err := h.service.GetBookingByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.service.ListUserBookings(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	h.transition(c, h.service.ConfirmBooking)
}

func (h *BookingHandler) pay(c *gin.Context) {
	h.transition(c, h.service.MarkPaid)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	h.transition(c, h.service.CancelBooking)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id int64) (*domain.Booking, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := op(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
