package domain

import "time"

// DateLayout is the calendar form used for reservation dates.
const DateLayout = "2006-01-02"

// Reservation is a single booking as exchanged with the reservations API.
// ID is empty for records that have not been saved yet.
type Reservation struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Seats int    `json:"seats"`
}

// ReservationResponse wraps a list of reservations in server order.
type ReservationResponse struct {
	Reservations []Reservation `json:"reservations"`
}

// Day parses Date as a calendar day in UTC.
func (r Reservation) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}
