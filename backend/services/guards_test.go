package services_test

import (
	"testing"

	"lms/backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyInstructor(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	student := createStudent(t, db, true)

	profile, err := services.VerifyInstructor(db, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, instructor.ID, profile.ID)

	_, err = services.VerifyInstructor(db, student.ID)
	requireKind(t, err, services.KindForbidden)

	_, err = services.VerifyInstructor(db, uuid.Nil)
	requireKind(t, err, services.KindUnauthenticated)

	// Valid uuid with no matching profile: authenticated but unknown.
	_, err = services.VerifyInstructor(db, uuid.New())
	requireKind(t, err, services.KindForbidden)
}

func TestVerifyApprovedStudent(t *testing.T) {
	db := newTestDB(t)
	approved := createStudent(t, db, true)
	pending := createStudent(t, db, false)
	instructor := createInstructor(t, db)

	profile, err := services.VerifyApprovedStudent(db, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, approved.ID, profile.ID)

	_, err = services.VerifyApprovedStudent(db, pending.ID)
	requireKind(t, err, services.KindForbidden)

	_, err = services.VerifyApprovedStudent(db, instructor.ID)
	requireKind(t, err, services.KindForbidden)

	_, err = services.VerifyApprovedStudent(db, uuid.Nil)
	requireKind(t, err, services.KindUnauthenticated)
}
