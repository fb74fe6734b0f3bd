package services

import (
	"log"
	"time"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// View paths invalidated by announcement mutations.
var announcementViews = []string{
	"/instructor/announcements",
	"/student/dashboard",
	"/student/announcements",
}

// CreateAnnouncement creates a draft or immediately published announcement.
func CreateAnnouncement(db *gorm.DB, callerID uuid.UUID, title, body string, publishNow bool) (*models.Announcement, error) {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return nil, err
	}

	title, err := utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	body, err = utils.ValidateLength(body, 1, 10000, "本文")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	announcement := models.Announcement{
		Title: utils.SanitizeText(title),
		Body:  utils.SanitizeMarkdown(body),
	}
	if publishNow {
		now := time.Now()
		announcement.PublishedAt = &now
	}

	if err := db.Create(&announcement).Error; err != nil {
		log.Println("[ERROR] creating announcement:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("お知らせの作成に失敗しました")
	}

	utils.Views.Invalidate(announcementViews...)
	return &announcement, nil
}

// UpdateAnnouncement replaces the title and body of an existing announcement.
func UpdateAnnouncement(db *gorm.DB, callerID uuid.UUID, id, title, body string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	id, err := utils.ValidateUUID(id, "お知らせID")
	if err != nil {
		return errValidation(err.Error())
	}
	title, err = utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return errValidation(err.Error())
	}
	body, err = utils.ValidateLength(body, 1, 10000, "本文")
	if err != nil {
		return errValidation(err.Error())
	}

	var announcement models.Announcement
	if err := db.First(&announcement, "id = ?", id).Error; err != nil {
		return errNotFound("お知らせが見つかりません")
	}

	updates := map[string]interface{}{
		"title": utils.SanitizeText(title),
		"body":  utils.SanitizeMarkdown(body),
	}
	if err := db.Model(&announcement).Updates(updates).Error; err != nil {
		log.Println("[ERROR] updating announcement:", utils.SanitizeForLog(err.Error()))
		return errPersistence("お知らせの更新に失敗しました")
	}

	utils.Views.Invalidate(announcementViews...)
	return nil
}

// PublishAnnouncement sets published_at to now.
func PublishAnnouncement(db *gorm.DB, callerID uuid.UUID, id string) error {
	return setPublishedAt(db, callerID, id, true)
}

// UnpublishAnnouncement reverts the announcement to a draft.
func UnpublishAnnouncement(db *gorm.DB, callerID uuid.UUID, id string) error {
	return setPublishedAt(db, callerID, id, false)
}

func setPublishedAt(db *gorm.DB, callerID uuid.UUID, id string, publish bool) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	id, err := utils.ValidateUUID(id, "お知らせID")
	if err != nil {
		return errValidation(err.Error())
	}

	var announcement models.Announcement
	if err := db.First(&announcement, "id = ?", id).Error; err != nil {
		return errNotFound("お知らせが見つかりません")
	}

	var publishedAt *time.Time
	message := "お知らせの非公開に失敗しました"
	if publish {
		now := time.Now()
		publishedAt = &now
		message = "お知らせの公開に失敗しました"
	}

	if err := db.Model(&announcement).Update("published_at", publishedAt).Error; err != nil {
		log.Println("[ERROR] toggling announcement publication:", utils.SanitizeForLog(err.Error()))
		return errPersistence(message)
	}

	utils.Views.Invalidate(announcementViews...)
	return nil
}

// DeleteAnnouncement removes the announcement.
func DeleteAnnouncement(db *gorm.DB, callerID uuid.UUID, id string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	id, err := utils.ValidateUUID(id, "お知らせID")
	if err != nil {
		return errValidation(err.Error())
	}

	if err := db.Delete(&models.Announcement{}, "id = ?", id).Error; err != nil {
		log.Println("[ERROR] deleting announcement:", utils.SanitizeForLog(err.Error()))
		return errPersistence("お知らせの削除に失敗しました")
	}

	utils.Views.Invalidate(announcementViews...)
	return nil
}

// PublishedAnnouncements lists announcements visible to students: published
// and not scheduled in the future, newest first.
func PublishedAnnouncements(db *gorm.DB) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := db.
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("published_at DESC").
		Find(&announcements).Error
	if err != nil {
		log.Println("[ERROR] fetching published announcements:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("お知らせの取得に失敗しました")
	}
	return announcements, nil
}

// AllAnnouncements lists every announcement, drafts included.
func AllAnnouncements(db *gorm.DB) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := db.Order("created_at DESC").Find(&announcements).Error; err != nil {
		log.Println("[ERROR] fetching announcements:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("お知らせの取得に失敗しました")
	}
	return announcements, nil
}
