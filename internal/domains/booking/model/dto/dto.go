package dto

import (
	"net/url"

	"frontdesk/shared/constant"
)

// CreateBookingRequest is the POST /bookings body. Dates are ISO-8601 UTC
// instant strings; normalization happens before this struct is built.
type CreateBookingRequest struct {
	RoomID         int64  `json:"roomId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ExtraBedsCount *int   `json:"extraBedsCount,omitempty"`
}

// UpdateBookingRequest is the PUT /bookings/{id} body.
type UpdateBookingRequest struct {
	CustomerID     int64  `json:"customerId"`
	RoomID         int64  `json:"roomId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	NumPersons     int    `json:"numPersons"`
	ExtraBedsCount int    `json:"extraBedsCount"`
}

// SearchBookingsRequest carries the free-form filters of the booking search
// screen. Empty fields are left out of the query entirely.
type SearchBookingsRequest struct {
	Customer  string `json:"customer"`
	Room      string `json:"room"`
	BookingID string `json:"bookingId"`
	Guests    string `json:"guests"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r SearchBookingsRequest) ToQuery() url.Values {
	query := url.Values{}

	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}

	set(constant.RequestParamCustomer, r.Customer)
	set(constant.RequestParamRoom, r.Room)
	set(constant.RequestParamBookingID, r.BookingID)
	set(constant.RequestParamGuests, r.Guests)
	set(constant.RequestParamStartDate, r.StartDate)
	set(constant.RequestParamEndDate, r.EndDate)

	return query
}
