package services_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"lms/backend/models"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	return db
}

func createInstructor(t *testing.T, db *gorm.DB) models.Profile {
	t.Helper()

	name := "講師 太郎"
	profile := models.Profile{
		Email:        fmt.Sprintf("instructor%d@example.com", atomic.AddInt64(&dbSeq, 1)),
		Name:         &name,
		PasswordHash: "x",
		Role:         models.RoleInstructor,
		Approved:     true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func createStudent(t *testing.T, db *gorm.DB, approved bool) models.Profile {
	t.Helper()

	name := "受講生 花子"
	profile := models.Profile{
		Email:        fmt.Sprintf("student%d@example.com", atomic.AddInt64(&dbSeq, 1)),
		Name:         &name,
		PasswordHash: "x",
		Role:         models.RoleStudent,
		Approved:     approved,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

// createWeek builds a phase + week pair to parent test contents.
func createWeek(t *testing.T, db *gorm.DB) models.Week {
	t.Helper()

	phase := models.Phase{Title: "Phase 1", OrderIndex: int(atomic.AddInt64(&dbSeq, 1))}
	require.NoError(t, db.Create(&phase).Error)

	week := models.Week{PhaseID: phase.ID, Title: "Week 1", OrderIndex: 1}
	require.NoError(t, db.Create(&week).Error)
	return week
}

func createContent(t *testing.T, db *gorm.DB, week models.Week, contentType string, orderIndex int) models.Content {
	t.Helper()

	content := models.Content{
		WeekID:     week.ID,
		Type:       contentType,
		Title:      fmt.Sprintf("Content %d", orderIndex),
		OrderIndex: orderIndex,
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}

func createExercise(t *testing.T, db *gorm.DB) models.Content {
	t.Helper()
	return createContent(t, db, createWeek(t, db), models.ContentTypeExercise, 1)
}

// requireKind asserts the error carries the given taxonomy kind.
func requireKind(t *testing.T, err error, kind services.ErrorKind) {
	t.Helper()

	var actionErr *services.ActionError
	require.True(t, errors.As(err, &actionErr), "expected ActionError, got %v", err)
	require.Equal(t, kind, actionErr.Kind, "unexpected error kind: %v", err)
}
