package model

import "time"

// Address is a delivery address owned by a user. At most one address per
// user carries is_default = true in any committed state.
type Address struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Label       *string   `json:"label,omitempty"` // Pointer for optional field
	AddressText string    `json:"address_text"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAddressRequest is used for creating a new address for a user.
// Coordinates are pointers so a missing field is distinguishable from an
// explicit 0; both must be present.
type CreateAddressRequest struct {
	Label       *string  `json:"label"`
	AddressText string   `json:"address_text" binding:"required"`
	Lat         *float64 `json:"lat" binding:"required"`
	Lng         *float64 `json:"lng" binding:"required"`
	IsDefault   bool     `json:"is_default"`
}

// UpdateAddressRequest allows partial updates. Coordinates must be supplied
// as a pair or not at all.
type UpdateAddressRequest struct {
	Label       *string  `json:"label,omitempty"` // Pointers to allow partial updates
	AddressText *string  `json:"address_text,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	IsDefault   *bool    `json:"is_default,omitempty"`
}
