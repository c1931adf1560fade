package utils

import (
	"errors"
	"math"
)

var (
	ErrInvalidCoordinate    = errors.New("lat/lng must be finite numbers")
	ErrCoordinateOutOfRange = errors.New("lat/lng outside valid world coordinates")
)

// ValidateLatLng checks that a coordinate pair is finite and within
// lat [-90, 90] / lng [-180, 180], returning the normalized values.
// Pure function, called before any address write with user-supplied coordinates.
func ValidateLatLng(lat, lng float64) (float64, float64, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, 0, ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, ErrCoordinateOutOfRange
	}
	return lat, lng, nil
}
