package handler

import (
	"net/http"

	"delivery_api/internal/model"
	"delivery_api/internal/service"

	"github.com/gin-gonic/gin"
)

// RiderHandler handles rider vehicle profile requests
type RiderHandler struct {
	service service.RiderService
}

// NewRiderHandler creates a new RiderHandler
func NewRiderHandler(s service.RiderService) *RiderHandler {
	return &RiderHandler{service: s}
}

// Upsert handles PUT /riders/:userId/profile
func (h *RiderHandler) Upsert(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req model.UpsertRiderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	profile, err := h.service.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Get handles GET /riders/:userId/profile
func (h *RiderHandler) Get(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Activate handles PATCH /riders/:userId/activate
func (h *RiderHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate handles PATCH /riders/:userId/deactivate
func (h *RiderHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *RiderHandler) setActive(c *gin.Context, active bool) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var profile *model.RiderProfile
	var err error
	if active {
		profile, err = h.service.Activate(c.Request.Context(), userID)
	} else {
		profile, err = h.service.Deactivate(c.Request.Context(), userID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RegisterRiderRoutes registers rider profile routes. Mutating routes
// require a valid rider bearer token.
func (h *RiderHandler) RegisterRiderRoutes(rg *gin.RouterGroup, authMW, riderRoleMW gin.HandlerFunc) {
	riderGroup := rg.Group("/riders")
	{
		riderGroup.GET("/:userId/profile", h.Get)
		riderGroup.PUT("/:userId/profile", authMW, riderRoleMW, h.Upsert)
		riderGroup.PATCH("/:userId/activate", authMW, riderRoleMW, h.Activate)
		riderGroup.PATCH("/:userId/deactivate", authMW, riderRoleMW, h.Deactivate)
	}
}
