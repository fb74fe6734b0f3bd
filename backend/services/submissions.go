package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var submissionTypes = []string{
	models.SubmissionTypeCode,
	models.SubmissionTypeURL,
}

var submissionViews = []string{
	"/student/submissions",
	"/instructor/submissions",
}

// CreateSubmission records an approved student's answer to an exercise
// content. Multiple submissions per (user, content) are allowed; each row
// is reviewed independently.
func CreateSubmission(db *gorm.DB, callerID uuid.UUID, contentID, submissionType, body string, allowedHosts []string) (*models.Submission, error) {
	if _, err := VerifyApprovedStudent(db, callerID); err != nil {
		return nil, err
	}

	contentID, err := utils.ValidateUUID(contentID, "コンテンツID")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	submissionType, err = utils.ValidateEnum(submissionType, submissionTypes, "提出タイプ")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	body, err = utils.ValidateLength(body, 1, 50000, "提出内容")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	if submissionType == models.SubmissionTypeURL {
		body = utils.SanitizeURL(body)
		if body == "" {
			return nil, errValidation("提出内容のURL形式が不正です")
		}
		if len(allowedHosts) > 0 {
			if _, err := utils.ValidateURL(body, "提出内容", allowedHosts...); err != nil {
				return nil, errValidation(err.Error())
			}
		}
	} else {
		body = utils.SanitizeText(body)
	}

	var content models.Content
	if err := db.First(&content, "id = ?", contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("コンテンツが見つかりません")
		}
		return nil, errPersistence("コンテンツの取得に失敗しました")
	}

	if content.Type != models.ContentTypeExercise {
		return nil, errInvalidState("このコンテンツには課題提出できません")
	}

	submission := models.Submission{
		UserID:         callerID,
		ContentID:      content.ID,
		SubmissionType: submissionType,
		Body:           body,
	}
	if err := db.Create(&submission).Error; err != nil {
		log.Println("[ERROR] creating submission:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("課題の提出に失敗しました")
	}

	utils.Views.Invalidate(submissionViews...)
	return &submission, nil
}

// AddFeedback attaches instructor feedback to a submission and notifies the
// submitting student. The notification write is best-effort: its failure is
// logged and does not roll back the feedback.
func AddFeedback(db *gorm.DB, callerID uuid.UUID, submissionID, feedback string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	submissionID, err := utils.ValidateUUID(submissionID, "提出物ID")
	if err != nil {
		return errValidation(err.Error())
	}
	feedback, err = utils.ValidateLength(feedback, 1, 10000, "フィードバック")
	if err != nil {
		return errValidation(err.Error())
	}
	feedback = utils.SanitizeMarkdown(feedback)

	var submission models.Submission
	if err := db.First(&submission, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("提出物が見つかりません")
		}
		return errPersistence("提出物の取得に失敗しました")
	}

	contentTitle := "不明なコンテンツ"
	var content models.Content
	if err := db.First(&content, "id = ?", submission.ContentID).Error; err == nil {
		contentTitle = content.Title
	}

	now := time.Now()
	updates := map[string]interface{}{
		"feedback":    feedback,
		"feedback_at": &now,
	}
	if err := db.Model(&submission).Updates(updates).Error; err != nil {
		log.Println("[ERROR] adding feedback:", utils.SanitizeForLog(err.Error()))
		return errPersistence("フィードバックの送信に失敗しました")
	}

	message := fmt.Sprintf("「%s」の提出課題にフィードバックが届きました", contentTitle)
	if _, err := CreateNotification(db, submission.UserID, models.NotificationTypeFeedback,
		"フィードバックが届きました", message, &submission.ID); err != nil {
		log.Println("[WARN] feedback notification not delivered:", utils.SanitizeForLog(err.Error()))
	}

	utils.Views.Invalidate(
		"/student/submissions",
		"/student/notifications",
		"/instructor/submissions",
		"/instructor/submissions/"+submissionID,
	)
	return nil
}

// DeleteSubmission removes a submission. Instructor only; students cannot
// retract what they submitted.
func DeleteSubmission(db *gorm.DB, callerID uuid.UUID, submissionID string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	submissionID, err := utils.ValidateUUID(submissionID, "提出物ID")
	if err != nil {
		return errValidation(err.Error())
	}

	if err := db.Delete(&models.Submission{}, "id = ?", submissionID).Error; err != nil {
		log.Println("[ERROR] deleting submission:", utils.SanitizeForLog(err.Error()))
		return errPersistence("提出物の削除に失敗しました")
	}

	utils.Views.Invalidate(submissionViews...)
	return nil
}

// SubmissionsForUser lists a student's own submissions, newest first.
func SubmissionsForUser(db *gorm.DB, userID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&submissions).Error
	if err != nil {
		log.Println("[ERROR] fetching submissions:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("提出物の取得に失敗しました")
	}
	return submissions, nil
}

// AllSubmissions lists every submission; pendingOnly restricts to rows still
// waiting for feedback.
func AllSubmissions(db *gorm.DB, pendingOnly bool) ([]models.Submission, error) {
	query := db.Order("created_at DESC")
	if pendingOnly {
		query = query.Where("feedback IS NULL")
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		log.Println("[ERROR] fetching submissions:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("提出物の取得に失敗しました")
	}
	return submissions, nil
}

// SubmissionByID loads a single submission.
func SubmissionByID(db *gorm.DB, id string) (*models.Submission, error) {
	id, err := utils.ValidateUUID(id, "提出物ID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var submission models.Submission
	if err := db.First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("提出物が見つかりません")
		}
		return nil, errPersistence("提出物の取得に失敗しました")
	}
	return &submission, nil
}
