package services_test

import (
	"testing"

	"lms/backend/models"
	"lms/backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveUser(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	pending := createStudent(t, db, false)

	require.NoError(t, services.ApproveUser(db, instructor.ID, pending.ID.String()))

	profile, err := services.ProfileByID(db, pending.ID)
	require.NoError(t, err)
	assert.True(t, profile.Approved)

	// Approval leaves a notification for the student.
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?",
		pending.ID, models.NotificationTypeApproval).First(&notification).Error)
	assert.Equal(t, "アカウントが承認されました", notification.Title)
}

func TestApproveUserGuards(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, true)
	pending := createStudent(t, db, false)

	err := services.ApproveUser(db, student.ID, pending.ID.String())
	requireKind(t, err, services.KindForbidden)

	instructor := createInstructor(t, db)
	err = services.ApproveUser(db, instructor.ID, uuid.NewString())
	requireKind(t, err, services.KindNotFound)

	err = services.ApproveUser(db, instructor.ID, "bad-id")
	requireKind(t, err, services.KindValidation)
}

func TestRejectUserDeletesProfile(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	pending := createStudent(t, db, false)

	require.NoError(t, services.RejectUser(db, instructor.ID, pending.ID.String()))

	_, err := services.ProfileByID(db, pending.ID)
	requireKind(t, err, services.KindNotFound)
}

func TestApproveUsersBatch(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	first := createStudent(t, db, false)
	second := createStudent(t, db, false)
	untouched := createStudent(t, db, false)

	ids := []string{first.ID.String(), second.ID.String()}
	require.NoError(t, services.ApproveUsers(db, instructor.ID, ids))

	approved, err := services.ApprovedStudents(db)
	require.NoError(t, err)
	assert.Len(t, approved, 2)

	profile, err := services.ProfileByID(db, untouched.ID)
	require.NoError(t, err)
	assert.False(t, profile.Approved)

	// One malformed id fails the whole batch before any write.
	err = services.ApproveUsers(db, instructor.ID, []string{untouched.ID.String(), "bad"})
	requireKind(t, err, services.KindValidation)

	err = services.ApproveUsers(db, instructor.ID, nil)
	requireKind(t, err, services.KindValidation)
}

func TestStudentListings(t *testing.T) {
	db := newTestDB(t)
	createInstructor(t, db)
	createStudent(t, db, true)
	createStudent(t, db, false)

	all, err := services.Students(db)
	require.NoError(t, err)
	assert.Len(t, all, 2, "instructors are excluded")

	pending, err := services.PendingUsers(db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Approved)
}
