package controllers_test

import (
	"net/http"
	"testing"

	"lms/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	ta := newTestApp(t)

	status, env := ta.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "Hanako@Example.com",
		"password": "password123",
		"name":     "花子",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var registered struct {
		Token   string         `json:"token"`
		Profile models.Profile `json:"profile"`
	}
	env.decode(t, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "hanako@example.com", registered.Profile.Email, "email is normalized")
	assert.Equal(t, models.RoleStudent, registered.Profile.Role)
	assert.False(t, registered.Profile.Approved, "registration starts unapproved")

	// Duplicate email is rejected.
	status, _ = ta.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "hanako@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, env = ta.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "hanako@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var loggedIn struct {
		Token string `json:"token"`
	}
	env.decode(t, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)

	status, env = ta.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "hanako@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestRegisterValidation(t *testing.T) {
	ta := newTestApp(t)

	// Password below the minimum length.
	status, _ := ta.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = ta.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestMe(t *testing.T) {
	ta := newTestApp(t)
	student, token := ta.createApprovedStudent(t)

	status, env := ta.request(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	var profile models.Profile
	env.decode(t, &profile)
	assert.Equal(t, student.ID, profile.ID)
	assert.Equal(t, student.Email, profile.Email)

	// The password hash never leaves the server.
	assert.NotContains(t, string(env.Data), "password")
}

func TestAuthRequired(t *testing.T) {
	ta := newTestApp(t)

	status, env := ta.request(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "認証されていません", env.Error)

	status, _ = ta.request(t, http.MethodGet, "/api/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
