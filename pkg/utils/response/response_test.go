package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, send func(c echo.Context) error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, send(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestSuccessResponse(t *testing.T) {
	t.Parallel()

	rec, body := record(t, func(c echo.Context) error {
		return SuccessResponse(c, echo.Map{"id": 1}, "Success")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Success", body["message"])
	assert.Equal(t, map[string]interface{}{"id": float64(1)}, body["data"])
	assert.Nil(t, body["errors"])

	parsed, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestCreatedResponse(t *testing.T) {
	t.Parallel()

	rec, body := record(t, func(c echo.Context) error {
		return CreatedResponse(c, nil, "Created")
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	rec, body := record(t, func(c echo.Context) error {
		return ErrorResponse(c, http.StatusNotFound, "Not found")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not found", body["message"])
}

func TestValidationErrorResponse(t *testing.T) {
	t.Parallel()

	rec, body := record(t, func(c echo.Context) error {
		return ValidationErrorResponse(c, "Validation failed", map[string]string{"email": "Email is required"})
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, map[string]interface{}{"email": "Email is required"}, body["errors"])
}
