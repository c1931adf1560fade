package model

import "time"

// RiderProfile is the 1:1 vehicle profile of a user with role RIDER
type RiderProfile struct {
	UserID           int64     `json:"user_id"`
	VehiclePlate     string    `json:"vehicle_plate"`
	VehicleModel     *string   `json:"vehicle_model,omitempty"`
	VehiclePhotoPath *string   `json:"vehicle_photo_path,omitempty"`
	RiderPhotoPath   *string   `json:"rider_photo_path,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpsertRiderProfileRequest creates or replaces a rider's vehicle profile.
// IsActive is preserved from the existing row when not supplied.
type UpsertRiderProfileRequest struct {
	VehiclePlate     string  `json:"vehicle_plate" binding:"required"`
	VehicleModel     *string `json:"vehicle_model,omitempty"`
	VehiclePhotoPath *string `json:"vehicle_photo_path,omitempty"`
	RiderPhotoPath   *string `json:"rider_photo_path,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}
