package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/config"
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/metrics"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

// authProvider is the slice of the auth service the handler needs
type authProvider interface {
	Signup(input service.SignupInput) (*models.UserModel, string, error)
	Login(email, password string) (*models.UserModel, string, error)
	Logout(token string) error
	UpdateProfile(userID uint, name, email *string) (*models.UserModel, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// attemptLimiter is the slice of the rate limit service the handler needs
type attemptLimiter interface {
	Check(identifier string, maxAttempts int, window time.Duration) (bool, error)
	Record(identifier string) error
}

// AuthHandler is the handler for the auth endpoints
type AuthHandler struct {
	cfg     *config.Config
	auth    authProvider
	limiter attemptLimiter
}

// NewAuthHandler creates a new handler for the auth endpoints
func NewAuthHandler(cfg *config.Config, auth *service.AuthService, limiter *service.RateLimitService) *AuthHandler {
	return &AuthHandler{cfg: cfg, auth: auth, limiter: limiter}
}

type signupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Signup registers a new user and returns the user with a bearer token
func (h *AuthHandler) Signup(c echo.Context) error {
	maxAttempts, window := h.cfg.SignupPolicy()
	if !h.allowAttempt(c, "signup", maxAttempts, window) {
		return response.ErrorResponse(c, http.StatusTooManyRequests, "Too many signup attempts. Please try again later.")
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if fieldErrors := requiredFields(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); fieldErrors != nil {
		return response.ValidationErrorResponse(c, "Validation failed", fieldErrors)
	}

	if !validName(req.Name) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Name must be between 2 and 255 characters")
	}
	if !validEmail(req.Email) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
	}
	if !validPassword(req.Password) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Password must be at least 6 characters long")
	}

	user, token, err := h.auth.Signup(service.SignupInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		AdminCode: req.AdminCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
			return response.ErrorResponse(c, http.StatusConflict, "User with this email already exists")
		}
		metrics.SignupsTotal.WithLabelValues("failure").Inc()
		zaplogger.Error("signup error", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error during signup")
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return response.CreatedResponse(c, echo.Map{
		"user":  user,
		"token": token,
	}, "User created successfully")
}

// Login authenticates a user and returns the user with a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	maxAttempts, window := h.cfg.LoginPolicy()
	if !h.allowAttempt(c, "login", maxAttempts, window) {
		return response.ErrorResponse(c, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if fieldErrors := requiredFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); fieldErrors != nil {
		return response.ValidationErrorResponse(c, "Validation failed", fieldErrors)
	}

	if !validEmail(req.Email) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return response.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrAccountDeactivated):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return response.ErrorResponse(c, http.StatusUnauthorized, "Account is deactivated")
		default:
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			zaplogger.Error("login error", zaplogger.Fields{"error": err.Error()})
			return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error during login")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return response.SuccessResponse(c, echo.Map{
		"user":  user,
		"token": token,
	}, "Login successful")
}

// Logout deactivates the session of the presented token
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.TokenFromContext(c)
	if err := h.auth.Logout(token); err != nil {
		zaplogger.Error("logout error", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error during logout")
	}
	return response.SuccessResponse(c, nil, "Logout successful")
}

// GetProfile returns the authenticated user
func (h *AuthHandler) GetProfile(c echo.Context) error {
	user := middleware.UserFromContext(c)
	return response.SuccessResponse(c, echo.Map{"user": user}, "Success")
}

// UpdateProfile applies partial name/email updates
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user := middleware.UserFromContext(c)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if req.Name != nil && !validName(*req.Name) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Name must be between 2 and 255 characters")
	}
	if req.Email != nil && !validEmail(*req.Email) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
	}

	updated, err := h.auth.UpdateProfile(user.ID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoUpdates):
			return response.ErrorResponse(c, http.StatusBadRequest, "No valid fields to update")
		case errors.Is(err, service.ErrEmailExists):
			return response.ErrorResponse(c, http.StatusConflict, "Email is already taken by another user")
		default:
			zaplogger.Error("profile update error", zaplogger.Fields{"error": err.Error()})
			return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		}
	}
	return response.SuccessResponse(c, echo.Map{"user": updated}, "Profile updated successfully")
}

// ChangePassword verifies the current password, stores the new one and
// invalidates every session of the user
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	maxAttempts, window := h.cfg.LoginPolicy()
	if !h.allowAttempt(c, "change-password", maxAttempts, window) {
		return response.ErrorResponse(c, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
	}

	user := middleware.UserFromContext(c)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if fieldErrors := requiredFields(map[string]string{
		"currentPassword": req.CurrentPassword,
		"newPassword":     req.NewPassword,
	}); fieldErrors != nil {
		return response.ValidationErrorResponse(c, "Validation failed", fieldErrors)
	}

	if !validPassword(req.NewPassword) {
		return response.ErrorResponse(c, http.StatusBadRequest, "New password must be at least 6 characters long")
	}

	if err := h.auth.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			return response.ErrorResponse(c, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			return response.ErrorResponse(c, http.StatusNotFound, "User not found")
		default:
			zaplogger.Error("password change error", zaplogger.Fields{"error": err.Error()})
			return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		}
	}
	return response.SuccessResponse(c, nil, "Password changed successfully. Please login again.")
}

// allowAttempt applies the advisory rate limit check and records the
// attempt. The check never blocks, it only reports; a limiter failure is
// logged and lets the request through.
func (h *AuthHandler) allowAttempt(c echo.Context, endpoint string, maxAttempts int, window time.Duration) bool {
	identifier := c.RealIP()

	allowed, err := h.limiter.Check(identifier, maxAttempts, window)
	if err != nil {
		zaplogger.Error("rate limit check failed", zaplogger.Fields{"error": err.Error()})
		return true
	}
	if !allowed {
		metrics.RateLimitedTotal.WithLabelValues(endpoint).Inc()
		return false
	}

	if err := h.limiter.Record(identifier); err != nil {
		zaplogger.Error("rate limit record failed", zaplogger.Fields{"error": err.Error()})
	}
	return true
}
