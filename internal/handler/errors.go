package handler

import (
	"errors"
	"net/http"

	"delivery_api/internal/repository"
	"delivery_api/internal/service"
	"delivery_api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes the API error envelope {error: {code, message}}
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// respondServiceError maps business-rule sentinel errors to transport status
// codes. Anything unrecognized is logged server-side and surfaced as a
// generic 500 without leaking internals. Status codes live only here;
// services and repositories never reason about HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUsername):
		respondError(c, http.StatusBadRequest, "BAD_USERNAME", service.ErrInvalidUsername.Error())
	case errors.Is(err, service.ErrMissingAvatar):
		respondError(c, http.StatusBadRequest, "MISSING_AVATAR", service.ErrMissingAvatar.Error())
	case errors.Is(err, service.ErrNotARider):
		respondError(c, http.StatusBadRequest, "NOT_RIDER", service.ErrNotARider.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", service.ErrInvalidCredentials.Error())
	case errors.Is(err, utils.ErrInvalidCoordinate):
		respondError(c, http.StatusBadRequest, "BAD_LATLNG", utils.ErrInvalidCoordinate.Error())
	case errors.Is(err, utils.ErrCoordinateOutOfRange):
		respondError(c, http.StatusBadRequest, "OUT_OF_RANGE", utils.ErrCoordinateOutOfRange.Error())
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", repository.ErrUserNotFound.Error())
	case errors.Is(err, repository.ErrAddressNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", repository.ErrAddressNotFound.Error())
	case errors.Is(err, repository.ErrRiderProfileNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", repository.ErrRiderProfileNotFound.Error())
	case errors.Is(err, repository.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "USERNAME_TAKEN", repository.ErrUsernameTaken.Error())
	case errors.Is(err, repository.ErrPhoneTaken):
		respondError(c, http.StatusConflict, "PHONE_TAKEN", repository.ErrPhoneTaken.Error())
	case errors.Is(err, repository.ErrVehiclePlateTaken):
		respondError(c, http.StatusConflict, "VEHICLE_PLATE_TAKEN", repository.ErrVehiclePlateTaken.Error())
	default:
		utils.Logger.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "ERR_UNEXPECTED", "Unexpected error")
	}
}
