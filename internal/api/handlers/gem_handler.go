package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

// gemProvider is the slice of the gem service the handler needs
type gemProvider interface {
	ApprovedGems() ([]repository.GemRow, error)
	Submit(userID uint, input service.GemSubmission) (*models.HiddenGemModel, error)
}

// GemHandler serves the hidden gems endpoints
type GemHandler struct {
	gems gemProvider
}

// NewGemHandler creates a new handler for the hidden gems endpoints
func NewGemHandler(gems *service.GemService) *GemHandler {
	return &GemHandler{gems: gems}
}

type gemRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// GetHiddenGems returns approved gems, latest approval first
func (h *GemHandler) GetHiddenGems(c echo.Context) error {
	gems, err := h.gems.ApprovedGems()
	if err != nil {
		zaplogger.Error("error loading hidden gems", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, gems, "Success")
}

// SubmitHiddenGem stores a gem as pending admin approval
func (h *GemHandler) SubmitHiddenGem(c echo.Context) error {
	user := middleware.UserFromContext(c)

	var req gemRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if fieldErrors := requiredFields(map[string]string{
		"name":        req.Name,
		"location":    req.Location,
		"description": req.Description,
		"category":    req.Category,
	}); fieldErrors != nil {
		return response.ValidationErrorResponse(c, "Validation failed", fieldErrors)
	}

	if !validName(req.Name) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Name must be between 2 and 255 characters")
	}
	if !validName(req.Location) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Location must be between 2 and 255 characters")
	}
	if !validText(req.Description, 10, 1000) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Description must be between 10 and 1000 characters")
	}
	if !service.ValidCategory(req.Category) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid category")
	}

	gem, err := h.gems.Submit(user.ID, service.GemSubmission{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		zaplogger.Error("error submitting hidden gem", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}

	return response.CreatedResponse(c, echo.Map{
		"id":          gem.ID,
		"name":        gem.Name,
		"location":    gem.Location,
		"description": gem.Description,
		"category":    gem.Category,
		"submittedBy": user.Name,
	}, "Hidden gem submitted successfully! It will appear after admin approval.")
}
