package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

// ContactHandler serves the contact form endpoint
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler creates a new handler for the contact endpoint
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact stores one contact message, attributed to the
// authenticated user when a valid bearer token was presented
func (h *ContactHandler) SubmitContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid JSON input")
	}

	if fieldErrors := requiredFields(map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"subject": req.Subject,
		"message": req.Message,
	}); fieldErrors != nil {
		return response.ValidationErrorResponse(c, "Validation failed", fieldErrors)
	}

	if !validName(req.Name) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Name must be between 2 and 255 characters")
	}
	if !validEmail(req.Email) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Invalid email format")
	}
	if !validName(req.Subject) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Subject must be between 2 and 255 characters")
	}
	if !validText(req.Message, 10, 1000) {
		return response.ErrorResponse(c, http.StatusBadRequest, "Message must be between 10 and 1000 characters")
	}

	var userID *uint
	if user := middleware.UserFromContext(c); user != nil {
		userID = &user.ID
	}

	err := h.contact.Submit(service.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		UserID:  userID,
	})
	if err != nil {
		zaplogger.Error("error submitting contact form", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}

	return response.CreatedResponse(c, nil, "Message sent successfully! We'll get back to you soon.")
}
