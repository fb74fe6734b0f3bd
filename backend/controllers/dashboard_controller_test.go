package controllers_test

import (
	"net/http"
	"testing"

	"lms/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsEndpoint(t *testing.T) {
	ta := newTestApp(t)
	_, instructorToken := ta.createInstructor(t)
	_, studentToken := ta.createApprovedStudent(t)
	exercise := ta.createExercise(t)

	status, _ := ta.request(t, http.MethodPost, "/api/submissions/", studentToken,
		map[string]interface{}{
			"content_id":      exercise.ID.String(),
			"submission_type": "code",
			"body":            "answer",
		})
	require.Equal(t, http.StatusCreated, status)

	status, env := ta.request(t, http.MethodGet, "/api/instructor/dashboard/stats", instructorToken, nil)
	require.Equal(t, http.StatusOK, status)

	var stats models.DashboardStats
	env.decode(t, &stats)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.ApprovedStudents)
	assert.Equal(t, int64(1), stats.TotalSubmissions)
	assert.Equal(t, int64(1), stats.PendingSubmissions)
	assert.Equal(t, int64(1), stats.TotalContents)
}

func TestDashboardDistributionEndpoint(t *testing.T) {
	ta := newTestApp(t)
	_, instructorToken := ta.createInstructor(t)

	status, env := ta.request(t, http.MethodGet, "/api/instructor/dashboard/distribution", instructorToken, nil)
	require.Equal(t, http.StatusOK, status)

	var distribution []models.ProgressDistribution
	env.decode(t, &distribution)
	require.Len(t, distribution, 5)
	assert.Equal(t, "0-20%", distribution[0].Range)
	assert.Equal(t, "81-100%", distribution[4].Range)
}

func TestDashboardTrendEndpoint(t *testing.T) {
	ta := newTestApp(t)
	_, instructorToken := ta.createInstructor(t)

	status, env := ta.request(t, http.MethodGet, "/api/instructor/dashboard/trend", instructorToken, nil)
	require.Equal(t, http.StatusOK, status)

	var trend []models.SubmissionTrend
	env.decode(t, &trend)
	assert.Len(t, trend, 7)
}

func TestDashboardPendingSubmissionsLimit(t *testing.T) {
	ta := newTestApp(t)
	_, instructorToken := ta.createInstructor(t)

	status, _ := ta.request(t, http.MethodGet,
		"/api/instructor/dashboard/pending-submissions?limit=abc", instructorToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ta.request(t, http.MethodGet,
		"/api/instructor/dashboard/pending-submissions?limit=-1", instructorToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboardForbiddenForStudents(t *testing.T) {
	ta := newTestApp(t)
	_, studentToken := ta.createApprovedStudent(t)

	for _, path := range []string{
		"/api/instructor/dashboard/stats",
		"/api/instructor/dashboard/distribution",
		"/api/instructor/dashboard/trend",
		"/api/instructor/dashboard/pending-submissions",
		"/api/instructor/dashboard/overall-progress",
	} {
		status, _ := ta.request(t, http.MethodGet, path, studentToken, nil)
		assert.Equal(t, http.StatusForbidden, status, path)
	}
}
