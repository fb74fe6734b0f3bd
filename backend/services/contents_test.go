package services_test

import (
	"testing"

	"lms/backend/models"
	"lms/backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHierarchyCRUD(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)

	description := "基礎を学びます"
	phase, err := services.CreatePhase(db, instructor.ID, "フェーズ1", &description, 1)
	require.NoError(t, err)

	week, err := services.CreateWeek(db, instructor.ID, phase.ID.String(), "第1週", nil, 1)
	require.NoError(t, err)

	body := "## 導入\n\n本文"
	content, err := services.CreateContent(db, instructor.ID, week.ID.String(),
		models.ContentTypeText, "イントロダクション", &body, 1)
	require.NoError(t, err)
	require.NotNil(t, content.Body)
	assert.Equal(t, body, *content.Body)

	phases, err := services.AllPhases(db)
	require.NoError(t, err)
	require.Len(t, phases, 1)

	weeks, err := services.WeeksByPhase(db, phase.ID.String())
	require.NoError(t, err)
	require.Len(t, weeks, 1)

	contents, err := services.ContentsByWeek(db, week.ID.String())
	require.NoError(t, err)
	require.Len(t, contents, 1)

	newBody := "updated"
	require.NoError(t, services.UpdateContent(db, instructor.ID, content.ID.String(),
		"新タイトル", &newBody, 2))

	reloaded, err := services.ContentByID(db, content.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "新タイトル", reloaded.Title)
	assert.Equal(t, 2, reloaded.OrderIndex)

	require.NoError(t, services.DeleteContent(db, instructor.ID, content.ID.String()))
	_, err = services.ContentByID(db, content.ID.String())
	requireKind(t, err, services.KindNotFound)
}

func TestContentMutationsRequireInstructor(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, true)

	_, err := services.CreatePhase(db, student.ID, "t", nil, 1)
	requireKind(t, err, services.KindForbidden)

	_, err = services.CreateWeek(db, student.ID, uuid.NewString(), "t", nil, 1)
	requireKind(t, err, services.KindForbidden)

	_, err = services.CreateContent(db, student.ID, uuid.NewString(),
		models.ContentTypeText, "t", nil, 1)
	requireKind(t, err, services.KindForbidden)
}

func TestCreateContentVideoRequiresYouTubeURL(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	week := createWeek(t, db)

	bad := "https://vimeo.com/12345"
	_, err := services.CreateContent(db, instructor.ID, week.ID.String(),
		models.ContentTypeVideo, "動画", &bad, 1)
	requireKind(t, err, services.KindValidation)

	good := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	content, err := services.CreateContent(db, instructor.ID, week.ID.String(),
		models.ContentTypeVideo, "動画", &good, 1)
	require.NoError(t, err)
	require.NotNil(t, content.Body)
	assert.Equal(t, good, *content.Body)
}

func TestCreateContentSanitizesMarkdownBody(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)
	week := createWeek(t, db)

	body := "<script>alert(1)</script># 本文"
	content, err := services.CreateContent(db, instructor.ID, week.ID.String(),
		models.ContentTypeExercise, "課題", &body, 1)
	require.NoError(t, err)
	require.NotNil(t, content.Body)
	assert.NotContains(t, *content.Body, "<script")
	assert.Contains(t, *content.Body, "# 本文")
}

func TestCreateWeekMissingPhase(t *testing.T) {
	db := newTestDB(t)
	instructor := createInstructor(t, db)

	_, err := services.CreateWeek(db, instructor.ID, uuid.NewString(), "t", nil, 1)
	requireKind(t, err, services.KindNotFound)
}

func TestContentsOrderedByIndex(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db)
	createContent(t, db, week, models.ContentTypeText, 3)
	createContent(t, db, week, models.ContentTypeText, 1)
	createContent(t, db, week, models.ContentTypeText, 2)

	contents, err := services.ContentsByWeek(db, week.ID.String())
	require.NoError(t, err)
	require.Len(t, contents, 3)
	assert.Equal(t, 1, contents[0].OrderIndex)
	assert.Equal(t, 2, contents[1].OrderIndex)
	assert.Equal(t, 3, contents[2].OrderIndex)
}
