package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lostnlocal/lostnlocalapi/internal/api/middleware"
	"github.com/lostnlocal/lostnlocalapi/internal/models"
	"github.com/lostnlocal/lostnlocalapi/internal/repository"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemService scripts gem reads and submissions for handler tests
type fakeGemService struct {
	approved  []repository.GemRow
	listErr   error
	submitErr error
	submitted *service.GemSubmission
}

func (f *fakeGemService) ApprovedGems() ([]repository.GemRow, error) {
	return f.approved, f.listErr
}

func (f *fakeGemService) Submit(userID uint, input service.GemSubmission) (*models.HiddenGemModel, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = &input
	return &models.HiddenGemModel{
		ID:          11,
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		Category:    input.Category,
		SubmittedBy: userID,
	}, nil
}

func TestGetHiddenGemsHandler(t *testing.T) {
	t.Parallel()

	approvedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	gems := &fakeGemService{approved: []repository.GemRow{
		{
			HiddenGemModel: models.HiddenGemModel{
				ID: 1, Name: "Moonlight Cove", Location: "North Shore",
				Category: "nature", Approved: true, ApprovedAt: &approvedAt,
			},
			SubmittedByName: "Asha",
		},
	}}
	h := &GemHandler{gems: gems}

	c, rec := newJSONContext(t, http.MethodGet, "/api/hidden-gems", "")
	require.NoError(t, h.GetHiddenGems(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Moonlight Cove", row["name"])
	assert.Equal(t, "Asha", row["submittedByName"])
}

func TestGetHiddenGemsHandlerFailure(t *testing.T) {
	t.Parallel()

	h := &GemHandler{gems: &fakeGemService{listErr: errors.New("db down")}}

	c, rec := newJSONContext(t, http.MethodGet, "/api/hidden-gems", "")
	require.NoError(t, h.GetHiddenGems(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeEnvelope(t, rec)["message"])
}

func TestSubmitHiddenGemHandler(t *testing.T) {
	t.Parallel()

	gems := &fakeGemService{}
	h := &GemHandler{gems: gems}

	c, rec := newJSONContext(t, http.MethodPost, "/api/hidden-gems",
		`{"name":"Moonlight Cove","location":"North Shore","description":"A quiet cove only locals know about","category":"nature"}`)
	c.Set(middleware.ContextUserKey, &models.UserModel{ID: 7, Name: "Asha"})

	require.NoError(t, h.SubmitHiddenGem(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Hidden gem submitted successfully! It will appear after admin approval.", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Moonlight Cove", data["name"])
	assert.Equal(t, "Asha", data["submittedBy"])

	require.NotNil(t, gems.submitted)
	assert.Equal(t, "nature", gems.submitted.Category)
}

func TestSubmitHiddenGemHandlerValidation(t *testing.T) {
	t.Parallel()

	h := &GemHandler{gems: &fakeGemService{}}

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "invalid category",
			body:    `{"name":"Moonlight Cove","location":"North Shore","description":"A quiet cove only locals know about","category":"shopping"}`,
			message: "Invalid category",
		},
		{
			name:    "short description",
			body:    `{"name":"Moonlight Cove","location":"North Shore","description":"short","category":"nature"}`,
			message: "Description must be between 10 and 1000 characters",
		},
		{
			name:    "missing location",
			body:    `{"name":"Moonlight Cove","description":"A quiet cove only locals know about","category":"nature"}`,
			message: "Validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/hidden-gems", tt.body)
			c.Set(middleware.ContextUserKey, &models.UserModel{ID: 7, Name: "Asha"})

			require.NoError(t, h.SubmitHiddenGem(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeEnvelope(t, rec)["message"])
		})
	}
}
