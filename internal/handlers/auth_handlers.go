package handlers

import (
	"errors"
	"net/http"

	"meditrack/internal/common"
	"meditrack/internal/models"
	"meditrack/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles the tag identity check and dashboard login.
type AuthHandlers struct {
	identitySvc services.IdentityService
	authSvc     services.AuthService
}

func NewAuthHandlers(identitySvc services.IdentityService, authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		identitySvc: identitySvc,
		authSvc:     authSvc,
	}
}

// CheckUID answers whether the presented RFID tag belongs to an active
// user. The body is the string literal "true" or "false", which is what
// the deployed dispenser firmware parses; it is kept over a JSON boolean
// on purpose. Unknown tag and inactive user are the same "false".
func (h *AuthHandlers) CheckUID(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return common.SendValidationError(c, "uid", "uid query parameter is required")
	}

	ok, err := h.identitySvc.CheckUID(c.Request().Context(), uid)
	if err != nil {
		return common.SendServerError(c, "Failed to check identity")
	}
	if ok {
		return c.String(http.StatusOK, "true")
	}
	return c.String(http.StatusOK, "false")
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	services.TokenResponse
	User *models.User `json:"user"`
}

// Login authenticates a dashboard user and issues a JWT access token.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	tokenResponse, user, err := h.authSvc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		return common.SendServerError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		TokenResponse: *tokenResponse,
		User:          user,
	})
}
