package model

const (
	EntityName = "room"
)

// Room mirrors the backend's room resource. Rooms are soft-deactivated via
// the Active flag rather than deleted, so historic bookings keep a valid
// reference.
type Room struct {
	ID            int64   `json:"id"`
	RoomNumber    string  `json:"roomNumber"`
	PricePerNight float64 `json:"pricePerNight"`
	BaseCapacity  int     `json:"baseCapacity"`
	MaxExtraBeds  int     `json:"maxExtraBeds"`
	Active        bool    `json:"active"`
}
