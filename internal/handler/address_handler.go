package handler

import (
	"net/http"
	"strconv"

	"delivery_api/internal/model"
	"delivery_api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles address CRUD and default-flag requests
type AddressHandler struct {
	service service.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(s service.AddressService) *AddressHandler {
	return &AddressHandler{service: s}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "BAD_ID", name+" must be a number")
		return 0, false
	}
	return id, true
}

// CreateForUser handles POST /users/:id/addresses
func (h *AddressHandler) CreateForUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	address, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

// ListForUser handles GET /users/:id/addresses
func (h *AddressHandler) ListForUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	addresses, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	c.JSON(http.StatusOK, addresses)
}

// Get handles GET /addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// SetDefault handles PATCH /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.service.SetDefault(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// Update handles PATCH /addresses/:id with partial fields
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	address, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// Delete handles DELETE /addresses/:id. Deleting the default address leaves
// the user without a default until SetDefault is called for another one.
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterAddressRoutes registers address routes, including the ones nested
// under a user
func (h *AddressHandler) RegisterAddressRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/users")
	{
		userGroup.POST("/:id/addresses", h.CreateForUser)
		userGroup.GET("/:id/addresses", h.ListForUser)
	}

	addressGroup := rg.Group("/addresses")
	{
		addressGroup.GET("/:id", h.Get)
		addressGroup.PATCH("/:id", h.Update)
		addressGroup.PATCH("/:id/default", h.SetDefault)
		addressGroup.DELETE("/:id", h.Delete)
	}
}
