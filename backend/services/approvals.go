package services

import (
	"errors"
	"log"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var approvalViews = []string{
	"/instructor/approvals",
	"/instructor/students",
}

// ApproveUser grants an account approval.
func ApproveUser(db *gorm.DB, callerID uuid.UUID, userID string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	userID, err := utils.ValidateUUID(userID, "ユーザーID")
	if err != nil {
		return errValidation(err.Error())
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("ユーザーが見つかりません")
		}
		return errPersistence("ユーザー情報の取得に失敗しました")
	}

	if err := db.Model(&profile).Update("approved", true).Error; err != nil {
		log.Println("[ERROR] approving user:", utils.SanitizeForLog(err.Error()))
		return errPersistence("ユーザーの承認に失敗しました")
	}

	if _, err := CreateNotification(db, profile.ID, models.NotificationTypeApproval,
		"アカウントが承認されました", "受講を開始できます", nil); err != nil {
		log.Println("[WARN] approval notification not delivered:", utils.SanitizeForLog(err.Error()))
	}

	utils.Views.Invalidate(approvalViews...)
	return nil
}

// RejectUser rejects a pending account by deleting the profile row.
// Destructive: the row and its audit history are gone afterward.
func RejectUser(db *gorm.DB, callerID uuid.UUID, userID string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	userID, err := utils.ValidateUUID(userID, "ユーザーID")
	if err != nil {
		return errValidation(err.Error())
	}

	if err := db.Delete(&models.Profile{}, "id = ?", userID).Error; err != nil {
		log.Println("[ERROR] rejecting user:", utils.SanitizeForLog(err.Error()))
		return errPersistence("ユーザーの却下に失敗しました")
	}

	utils.Views.Invalidate(approvalViews...)
	return nil
}

// ApproveUsers bulk-approves accounts in one statement.
func ApproveUsers(db *gorm.DB, callerID uuid.UUID, userIDs []string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return errValidation("ユーザーIDは必須です")
	}
	for _, id := range userIDs {
		if _, err := utils.ValidateUUID(id, "ユーザーID"); err != nil {
			return errValidation(err.Error())
		}
	}

	err := db.Model(&models.Profile{}).
		Where("id IN ?", userIDs).
		Update("approved", true).Error
	if err != nil {
		log.Println("[ERROR] approving users:", utils.SanitizeForLog(err.Error()))
		return errPersistence("ユーザーの承認に失敗しました")
	}

	utils.Views.Invalidate(approvalViews...)
	return nil
}

// PendingUsers lists unapproved student accounts, newest first.
func PendingUsers(db *gorm.DB) ([]models.Profile, error) {
	return listStudents(db, db.Where("role = ? AND approved = ?", models.RoleStudent, false))
}

// Students lists every student account.
func Students(db *gorm.DB) ([]models.Profile, error) {
	return listStudents(db, db.Where("role = ?", models.RoleStudent))
}

// ApprovedStudents lists approved student accounts.
func ApprovedStudents(db *gorm.DB) ([]models.Profile, error) {
	return listStudents(db, db.Where("role = ? AND approved = ?", models.RoleStudent, true))
}

func listStudents(db *gorm.DB, query *gorm.DB) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		log.Println("[ERROR] fetching students:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("ユーザー情報の取得に失敗しました")
	}
	return profiles, nil
}

// ProfileByID loads one profile.
func ProfileByID(db *gorm.DB, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("ユーザーが見つかりません")
		}
		return nil, errPersistence("ユーザー情報の取得に失敗しました")
	}
	return &profile, nil
}
