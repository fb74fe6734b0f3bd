package services

import (
	"log"
	"time"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var progressViews = []string{
	"/student/dashboard",
	"/student/contents",
}

// UpdateProgress upserts the caller's completion flag for one content. The
// unique (user_id, content_id) index makes concurrent duplicate upserts
// converge to a single row.
func UpdateProgress(db *gorm.DB, callerID uuid.UUID, contentID string, completed bool) (*models.UserProgress, error) {
	if err := requireAuthenticated(callerID); err != nil {
		return nil, err
	}

	contentID, err := utils.ValidateUUID(contentID, "コンテンツID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	progress := models.UserProgress{
		UserID:      callerID,
		ContentID:   uuid.MustParse(contentID),
		Completed:   completed,
		CompletedAt: completedAt,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&progress).Error
	if err != nil {
		log.Println("[ERROR] updating progress:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("進捗の更新に失敗しました")
	}

	// On the conflict path the generated id was discarded in favor of the
	// existing row; reload so the caller sees the persisted row.
	var persisted models.UserProgress
	err = db.Where("user_id = ? AND content_id = ?", callerID, progress.ContentID).
		First(&persisted).Error
	if err != nil {
		log.Println("[ERROR] reloading progress:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("進捗の更新に失敗しました")
	}

	utils.Views.Invalidate(progressViews...)
	return &persisted, nil
}

// ProgressForUser lists a user's progress rows, newest first.
func ProgressForUser(db *gorm.DB, userID uuid.UUID) ([]models.UserProgress, error) {
	var progress []models.UserProgress
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&progress).Error
	if err != nil {
		log.Println("[ERROR] fetching progress:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("進捗の取得に失敗しました")
	}
	return progress, nil
}

// CompletedContentIDs returns the ids of contents a user has completed.
func CompletedContentIDs(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&models.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("content_id", &ids).Error
	if err != nil {
		log.Println("[ERROR] fetching completed contents:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("進捗の取得に失敗しました")
	}
	return ids, nil
}
