package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

// gemModerator is the slice of the gem service the admin handler needs
type gemModerator interface {
	PendingGems() ([]repository.GemRow, error)
	Approve(id uint) error
	Reject(id uint) error
}

// roleAssigner is the slice of the auth service the admin handler needs
type roleAssigner interface {
	SetAdmin(userID uint, isAdmin bool) error
}

// AdminHandler serves the admin only endpoints. Routes must be wrapped
// with both AuthMiddleware and AdminMiddleware.
type AdminHandler struct {
	gems gemModerator
	auth roleAssigner
}

// NewAdminHandler creates a new handler for the admin endpoints
func NewAdminHandler(gems *service.GemService, auth *service.AuthService) *AdminHandler {
	return &AdminHandler{gems: gems, auth: auth}
}

type setRoleRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

// GetPendingGems returns gems awaiting approval, newest first
func (h *AdminHandler) GetPendingGems(c echo.Context) error {
	gems, err := h.gems.PendingGems()
	if err != nil {
		zaplogger.Error("error loading pending gems", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, gems, "Success")
}

// ApproveGem publishes a pending gem
func (h *AdminHandler) ApproveGem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid gem id")
	}

	if err := h.gems.Approve(id); err != nil {
		if errors.Is(err, service.ErrGemNotFound) {
			return response.ErrorResponse(c, http.StatusNotFound, "Hidden gem not found")
		}
		zaplogger.Error("error approving gem", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, nil, "Hidden gem approved successfully")
}

// RejectGem removes a gem
func (h *AdminHandler) RejectGem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid gem id")
	}

	if err := h.gems.Reject(id); err != nil {
		if errors.Is(err, service.ErrGemNotFound) {
			return response.ErrorResponse(c, http.StatusNotFound, "Hidden gem not found")
		}
		zaplogger.Error("error rejecting gem", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, nil, "Hidden gem rejected and removed")
}

// SetUserRole grants or revokes the admin flag for a user
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}
	if req.IsAdmin == nil {
		return response.ValidationErrorResponse(c, "Validation failed", map[string]string{
			"isAdmin": "IsAdmin is required",
		})
	}

	if err := h.auth.SetAdmin(id, *req.IsAdmin); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return response.ErrorResponse(c, http.StatusNotFound, "User not found")
		}
		zaplogger.Error("error setting user role", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, nil, "User role updated successfully")
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
