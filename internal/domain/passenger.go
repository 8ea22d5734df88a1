package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type SeatType string

const (
	SeatTypeWindow SeatType = "WINDOW"
	SeatTypeAisle  SeatType = "AISLE"
	SeatTypeMiddle SeatType = "MIDDLE"
)

type Passenger struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"booking_id"`
	FlightID    int64     `json:"flight_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	NationalID  string    `json:"national_id"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
	SeatLabel   string    `json:"seat_label"`
	SeatType    SeatType  `json:"seat_type"`
	// Active is false once the owning booking is cancelled and the seat freed.
	Active bool `json:"active"`
}
