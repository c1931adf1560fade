package handler

import (
	"net/http"

	"delivery_api/internal/model"
	"delivery_api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles registration, login and user lookup requests
type UserHandler struct {
	service service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.AuthService) *UserHandler {
	return &UserHandler{service: s}
}

// RegisterMember handles POST /users/members (multipart form + avatarFile)
func (h *UserHandler) RegisterMember(c *gin.Context) {
	var req model.RegisterMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	// Optional at binding level so that the service can report MISSING_AVATAR
	// after the field validations, matching the documented check order.
	avatar, err := c.FormFile("avatarFile")
	if err != nil {
		avatar = nil
	}

	user, address, err := h.service.RegisterMember(c.Request.Context(), req, avatar)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":              user.ID,
		"role":            user.Role,
		"phone":           user.Phone,
		"username":        user.Username,
		"name":            user.Name,
		"avatar_path":     user.AvatarPath,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
		"default_address": address,
	})
}

// RegisterRider handles POST /users/riders (multipart form, optional files)
func (h *UserHandler) RegisterRider(c *gin.Context) {
	var req model.RegisterRiderRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	avatar, err := c.FormFile("avatarFile")
	if err != nil {
		avatar = nil
	}
	vehiclePhoto, err := c.FormFile("vehiclePhotoFile")
	if err != nil {
		vehiclePhoto = nil
	}

	user, profile, err := h.service.RegisterRider(c.Request.Context(), req, avatar, vehiclePhoto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            user.ID,
		"role":          user.Role,
		"phone":         user.Phone,
		"username":      user.Username,
		"name":          user.Name,
		"avatar_path":   user.AvatarPath,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
		"rider_profile": profile,
	})
}

// Login handles POST /users/login with a username-or-phone identifier
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"role":        user.Role,
		"phone":       user.Phone,
		"username":    user.Username,
		"name":        user.Name,
		"avatar_path": user.AvatarPath,
		"created_at":  user.CreatedAt,
		"updated_at":  user.UpdatedAt,
		"token":       token,
	})
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/users")
	{
		userGroup.POST("/members", h.RegisterMember)
		userGroup.POST("/riders", h.RegisterRider)
		userGroup.POST("/login", h.Login)
		userGroup.GET("/:id", h.GetUser)
	}
}
