package controllers_test

import (
	"net/http"
	"testing"

	"lms/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressFlow(t *testing.T) {
	ta := newTestApp(t)
	student, studentToken := ta.createApprovedStudent(t)
	exercise := ta.createExercise(t)

	status, env := ta.request(t, http.MethodPost, "/api/progress/", studentToken,
		map[string]interface{}{
			"content_id": exercise.ID.String(),
			"completed":  true,
		})
	require.Equal(t, http.StatusOK, status)

	var progress models.UserProgress
	env.decode(t, &progress)
	assert.Equal(t, student.ID, progress.UserID, "the row belongs to the caller")
	assert.True(t, progress.Completed)

	status, env = ta.request(t, http.MethodGet, "/api/progress/rate", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var rate struct {
		Rate int `json:"rate"`
	}
	env.decode(t, &rate)
	assert.Equal(t, 100, rate.Rate)

	status, env = ta.request(t, http.MethodGet, "/api/progress/", studentToken, nil)
	require.Equal(t, http.StatusOK, status)

	var rows []models.UserProgress
	env.decode(t, &rows)
	assert.Len(t, rows, 1)
}

func TestProgressRepeatedUpdates(t *testing.T) {
	ta := newTestApp(t)
	_, studentToken := ta.createApprovedStudent(t)
	exercise := ta.createExercise(t)

	body := map[string]interface{}{
		"content_id": exercise.ID.String(),
		"completed":  true,
	}
	for i := 0; i < 2; i++ {
		status, _ := ta.request(t, http.MethodPost, "/api/progress/", studentToken, body)
		require.Equal(t, http.StatusOK, status)
	}

	var count int64
	require.NoError(t, ta.DB.Model(&models.UserProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProgressInvalidContentID(t *testing.T) {
	ta := newTestApp(t)
	_, studentToken := ta.createApprovedStudent(t)

	status, env := ta.request(t, http.MethodPost, "/api/progress/", studentToken,
		map[string]interface{}{
			"content_id": "not-a-uuid",
			"completed":  true,
		})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}
