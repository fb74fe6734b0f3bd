package services

import (
	"errors"
	"log"
	"time"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var notificationTypes = []string{
	models.NotificationTypeFeedback,
	models.NotificationTypeAnnouncement,
	models.NotificationTypeApproval,
}

var notificationViews = []string{
	"/student/notifications",
	"/student/dashboard",
}

// CreateNotification persists a notification for a user. Internal helper:
// it is only invoked as a side effect of other actions, never directly by
// a request, so there is no caller guard.
func CreateNotification(db *gorm.DB, userID uuid.UUID, notificationType, title, body string, relatedID *uuid.UUID) (*models.Notification, error) {
	if userID == uuid.Nil {
		return nil, errValidation("ユーザーIDの形式が不正です")
	}
	notificationType, err := utils.ValidateEnum(notificationType, notificationTypes, "通知タイプ")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	title, err = utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	body, err = utils.ValidateLength(body, 1, 2000, "本文")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	notification := models.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     utils.SanitizeText(title),
		Body:      utils.SanitizeText(body),
		RelatedID: relatedID,
	}

	if err := db.Create(&notification).Error; err != nil {
		log.Println("[ERROR] creating notification:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("通知の作成に失敗しました")
	}

	return &notification, nil
}

// MarkNotificationAsRead marks one of the caller's notifications as read.
func MarkNotificationAsRead(db *gorm.DB, callerID uuid.UUID, id string) error {
	if err := requireAuthenticated(callerID); err != nil {
		return err
	}

	notification, err := ownedNotification(db, callerID, id)
	if err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_read": true,
		"read_at": &now,
	}
	if err := db.Model(notification).Updates(updates).Error; err != nil {
		log.Println("[ERROR] marking notification as read:", utils.SanitizeForLog(err.Error()))
		return errPersistence("通知の更新に失敗しました")
	}

	utils.Views.Invalidate(notificationViews...)
	return nil
}

// MarkAllNotificationsAsRead bulk-updates the caller's unread notifications
// with a single timestamp.
func MarkAllNotificationsAsRead(db *gorm.DB, callerID uuid.UUID) error {
	if err := requireAuthenticated(callerID); err != nil {
		return err
	}

	now := time.Now()
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", callerID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
	if err != nil {
		log.Println("[ERROR] marking notifications as read:", utils.SanitizeForLog(err.Error()))
		return errPersistence("通知の更新に失敗しました")
	}

	utils.Views.Invalidate(notificationViews...)
	return nil
}

// DeleteNotification removes one of the caller's notifications.
func DeleteNotification(db *gorm.DB, callerID uuid.UUID, id string) error {
	if err := requireAuthenticated(callerID); err != nil {
		return err
	}

	notification, err := ownedNotification(db, callerID, id)
	if err != nil {
		return err
	}

	if err := db.Delete(notification).Error; err != nil {
		log.Println("[ERROR] deleting notification:", utils.SanitizeForLog(err.Error()))
		return errPersistence("通知の削除に失敗しました")
	}

	utils.Views.Invalidate(notificationViews...)
	return nil
}

// ownedNotification loads a notification and confirms the caller is its
// recipient.
func ownedNotification(db *gorm.DB, callerID uuid.UUID, id string) (*models.Notification, error) {
	id, err := utils.ValidateUUID(id, "通知ID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("通知が見つかりません")
		}
		return nil, errPersistence("通知の取得に失敗しました")
	}

	if notification.UserID != callerID {
		return nil, errForbidden()
	}

	return &notification, nil
}

// NotificationsFor lists the caller's notifications, newest first.
func NotificationsFor(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		log.Println("[ERROR] fetching notifications:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("通知の取得に失敗しました")
	}
	return notifications, nil
}

// UnreadNotificationCount counts the caller's unread notifications.
func UnreadNotificationCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		log.Println("[ERROR] counting notifications:", utils.SanitizeForLog(err.Error()))
		return 0, errPersistence("通知の取得に失敗しました")
	}
	return count, nil
}
