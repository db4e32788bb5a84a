// Package response contains response utility functions and types
package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Response represents the standard API response structure
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Errors    interface{} `json:"errors"`
	Timestamp string      `json:"timestamp"`
}

// SuccessResponse sends a successful JSON response
func SuccessResponse(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// CreatedResponse sends a successful JSON response with a 201 status
func CreatedResponse(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponse sends an error JSON response
func ErrorResponse(c echo.Context, httpStatus int, message string) error {
	return c.JSON(httpStatus, Response{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ValidationErrorResponse sends a 400 response with field level errors
func ValidationErrorResponse(c echo.Context, message string, errors map[string]string) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
