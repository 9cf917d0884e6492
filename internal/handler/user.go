package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/middleware"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService   *service.UserService
	driverService *service.DriverService
	tokens        *middleware.TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, driverService *service.DriverService, tokens *middleware.TokenIssuer) *UserHandler {
	return &UserHandler{userService: userService, driverService: driverService, tokens: tokens}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AuthResponse carries a user together with a fresh access token.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   string       `json:"expires_at"`
}

// MeResponse is the HTTP response for the authenticated user.
type MeResponse struct {
	UserResponse
	DriverProfile *DriverProfileResponse `json:"driver_profile,omitempty"`
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	token, exp, err := h.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token,
		ExpiresAt:   exp.Format(timestampLayout),
	})
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userService.GetUser(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := MeResponse{UserResponse: toUserResponse(user)}
	if user.IsDriver() {
		profile, err := h.driverService.GetProfile(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			respondError(c, err)
			return
		}
		if profile != nil {
			p := toDriverProfileResponse(profile)
			resp.DriverProfile = &p
		}
	}

	respondJSON(c, http.StatusOK, resp)
}
