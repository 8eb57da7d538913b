package model

import (
	"time"

	customerModel "frontdesk/internal/domains/customer/model"
	roomModel "frontdesk/internal/domains/room/model"
)

const (
	EntityName = "booking"
)

// Booking is the persisted, backend-assigned form of a stay. It is never
// mutated locally after a successful round trip: after any write the
// authoritative list is reloaded instead.
type Booking struct {
	BookingID      int64                   `json:"bookingId"`
	CustomerID     int64                   `json:"customerId,omitempty"`
	RoomID         int64                   `json:"roomId,omitempty"`
	Customer       *customerModel.Customer `json:"customer,omitempty"`
	Room           *roomModel.Room         `json:"room,omitempty"`
	StartDate      time.Time               `json:"startDate"`
	EndDate        time.Time               `json:"endDate"`
	NumPersons     int                     `json:"numPersons"`
	ExtraBedsCount int                     `json:"extraBedsCount,omitempty"`
}
