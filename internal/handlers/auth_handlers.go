package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockflow/internal/common"
	"stockflow/internal/services"
)

type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": token, "token_type": "Bearer"})
}

type meResponse struct {
	UserID      string  `json:"user_id"`
	IsSuperuser bool    `json:"is_superuser"`
	Role        *string `json:"role,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	CustomerID  *string `json:"customer_id,omitempty"`
}

// Me handles GET /me
func (h *AuthHandlers) Me(c echo.Context) error {
	principal, ok := common.GetPrincipal(c.Request().Context())
	if !ok {
		return common.ErrUnauthenticated
	}

	resp := meResponse{
		UserID:      principal.UserID.String(),
		IsSuperuser: principal.IsSuperuser,
	}
	if principal.EmployeeRole != nil {
		role := principal.EmployeeRole.String()
		resp.Role = &role
	}
	if principal.EmployeeID != nil {
		id := principal.EmployeeID.String()
		resp.EmployeeID = &id
	}
	if principal.CustomerID != nil {
		id := principal.CustomerID.String()
		resp.CustomerID = &id
	}
	return c.JSON(http.StatusOK, resp)
}
