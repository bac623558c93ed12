package handlers

import (
	"errors"
	"net/http"

	"meditrack/internal/common"
	"meditrack/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles user provisioning and the admin user views.
type UserHandlers struct {
	userSvc services.UserService
}

func NewUserHandlers(userSvc services.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// CreateUserRequest represents the user creation request payload
type CreateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	RFIDUID  *string `json:"rfid_uid"`
}

// CreateUser provisions a new user. Username, email and rfid_uid must be
// unique; a collision on any of them is a 409.
func (h *UserHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userSvc.Create(ctx, &services.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RFIDUID:  req.RFIDUID,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			return common.SendValidationError(c, "body", err.Error())
		case errors.Is(err, common.ErrConflict):
			return common.SendConflictError(c, err.Error())
		default:
			return common.SendServerError(c, "Failed to create user")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

// ListUsersRequest represents query parameters for listing users
type ListUsersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListUsers returns users for the dashboard. Password hashes never
// serialize (json:"-" on the model).
func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	users, err := h.userSvc.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list users")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// SetActiveRequest represents the active-flag toggle payload
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles a user's active flag. Deactivated users fail the
// identity check exactly like unknown tags.
func (h *UserHandlers) SetActive(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userSvc.SetActive(ctx, userID, req.Active)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "User")
		}
		return common.SendServerError(c, "Failed to update user")
	}

	return c.JSON(http.StatusOK, user)
}
