package dto

type CreateRoomRequest struct {
	RoomNumber    string  `json:"roomNumber"    validate:"required,max=20"`
	PricePerNight float64 `json:"pricePerNight" validate:"required,gte=0"`
	BaseCapacity  int     `json:"baseCapacity"  validate:"required,min=1"`
	MaxExtraBeds  int     `json:"maxExtraBeds"  validate:"min=0"`
	Active        *bool   `json:"active"        validate:"omitempty"`
}

type UpdateRoomRequest struct {
	RoomNumber    string   `json:"roomNumber"    validate:"omitempty,max=20"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	BaseCapacity  *int     `json:"baseCapacity"  validate:"omitempty,min=1"`
	MaxExtraBeds  *int     `json:"maxExtraBeds"  validate:"omitempty,min=0"`
	Active        *bool    `json:"active"        validate:"omitempty"`
}
