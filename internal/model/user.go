package model

import "time"

const (
	RoleMember = "MEMBER"
	RoleRider  = "RIDER"
)

// User represents a registered account (member or rider)
type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Name         string    `json:"name"`
	AvatarPath   *string   `json:"avatar_path,omitempty"` // Pointer for optional field
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterMemberRequest carries the multipart form fields for member signup.
// The avatar file itself arrives as a separate multipart part.
type RegisterMemberRequest struct {
	Username  string   `form:"username" binding:"required"`
	Password  string   `form:"password" binding:"required,min=6"`
	Name      string   `form:"name" binding:"required"`
	Phone     string   `form:"phone" binding:"required"`
	PlaceName string   `form:"placeName" binding:"required"` // label of the initial default address
	Address   string   `form:"address" binding:"required"`
	Lat       *float64 `form:"lat" binding:"required"` // pointer so an explicit 0 still binds
	Lng       *float64 `form:"lng" binding:"required"`
}

// RegisterRiderRequest carries the multipart form fields for rider signup
type RegisterRiderRequest struct {
	Username         string  `form:"username" binding:"required"`
	Password         string  `form:"password" binding:"required,min=6"`
	Name             string  `form:"name" binding:"required"`
	Phone            string  `form:"phone" binding:"required"`
	VehiclePlate     string  `form:"vehicle_plate" binding:"required"`
	VehicleModel     *string `form:"vehicle_model"`
	VehiclePhotoPath *string `form:"vehicle_photo_path"` // used when no vehiclePhotoFile is uploaded
}

// LoginRequest accepts either a username or a phone number as identifier
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}
