package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farmersconnect/internal/errors"
	"farmersconnect/internal/model"
	"farmersconnect/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request. Pointer fields
// distinguish absent keys from empty values.
type RegisterRequest struct {
	Email     *string `json:"email" validate:"required" example:"jane@example.com"`
	FirstName *string `json:"first_name" validate:"required" example:"Jane"`
	LastName  *string `json:"last_name" validate:"required" example:"Wanjiru"`
	Password  *string `json:"password" validate:"required" example:"shamba123"`
	IsFarmer  *bool   `json:"is_farmer" validate:"required" example:"true"`
}

// LoginRequest represents a user login request. Absent fields decode as
// empty strings and fail authentication like any other wrong credential.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"shamba123"`
}

// MessageResponse is the register response body.
type MessageResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// LoginResponse is the login response body.
type LoginResponse struct {
	Success bool           `json:"success"`
	User    *model.Profile `json:"user,omitempty"`
	Message string         `json:"message,omitempty"`
	Code    string         `json:"code,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return registerError(err)
	}

	_, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     *req.Email,
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Password:  *req.Password,
		IsFarmer:  *req.IsFarmer,
	})
	if err != nil {
		return registerError(err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} LoginResponse "body is not a JSON object"
// @Failure 401 {object} LoginResponse
// @Failure 500 {object} LoginResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return loginError(err)
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return loginError(err)
	}

	profile := user.Profile()
	return c.JSON(http.StatusOK, LoginResponse{Success: true, User: &profile})
}

func registerError(err error) error {
	he := errors.MapErrorToHTTP(err, http.StatusInternalServerError)
	return echo.NewHTTPError(he.StatusCode, MessageResponse{Message: he.Message, Code: he.Code})
}

func loginError(err error) error {
	he := errors.MapErrorToHTTP(err, http.StatusInternalServerError)
	return echo.NewHTTPError(he.StatusCode, LoginResponse{Success: false, Message: he.Message, Code: he.Code})
}
