package services

import (
	"errors"
	"log"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var contentTypes = []string{
	models.ContentTypeVideo,
	models.ContentTypeText,
	models.ContentTypeExercise,
}

var contentViews = []string{
	"/student/contents",
	"/instructor/contents",
}

// Content hierarchy reads, ordered by order_index.

func AllPhases(db *gorm.DB) ([]models.Phase, error) {
	var phases []models.Phase
	if err := db.Order("order_index ASC").Find(&phases).Error; err != nil {
		log.Println("[ERROR] fetching phases:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("フェーズの取得に失敗しました")
	}
	return phases, nil
}

func WeeksByPhase(db *gorm.DB, phaseID string) ([]models.Week, error) {
	phaseID, err := utils.ValidateUUID(phaseID, "フェーズID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var weeks []models.Week
	if err := db.Where("phase_id = ?", phaseID).Order("order_index ASC").Find(&weeks).Error; err != nil {
		log.Println("[ERROR] fetching weeks:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("週の取得に失敗しました")
	}
	return weeks, nil
}

func ContentsByWeek(db *gorm.DB, weekID string) ([]models.Content, error) {
	weekID, err := utils.ValidateUUID(weekID, "週ID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var contents []models.Content
	if err := db.Where("week_id = ?", weekID).Order("order_index ASC").Find(&contents).Error; err != nil {
		log.Println("[ERROR] fetching contents:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("コンテンツの取得に失敗しました")
	}
	return contents, nil
}

func ContentByID(db *gorm.DB, id string) (*models.Content, error) {
	id, err := utils.ValidateUUID(id, "コンテンツID")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("コンテンツが見つかりません")
		}
		return nil, errPersistence("コンテンツの取得に失敗しました")
	}
	return &content, nil
}

// Instructor-only hierarchy mutations. Reparenting is not supported: parent
// foreign keys are fixed at creation.

func CreatePhase(db *gorm.DB, callerID uuid.UUID, title string, description *string, orderIndex int) (*models.Phase, error) {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return nil, err
	}

	title, err := utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	orderIndex, err = utils.ValidateNumberRange(orderIndex, 0, 1000, "表示順")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	phase := models.Phase{
		Title:       utils.SanitizeText(title),
		Description: sanitizeOptionalText(description),
		OrderIndex:  orderIndex,
	}
	if err := db.Create(&phase).Error; err != nil {
		log.Println("[ERROR] creating phase:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("フェーズの作成に失敗しました")
	}

	utils.Views.Invalidate(contentViews...)
	return &phase, nil
}

func CreateWeek(db *gorm.DB, callerID uuid.UUID, phaseID, title string, description *string, orderIndex int) (*models.Week, error) {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return nil, err
	}

	phaseID, err := utils.ValidateUUID(phaseID, "フェーズID")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	title, err = utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	orderIndex, err = utils.ValidateNumberRange(orderIndex, 0, 1000, "表示順")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	var phase models.Phase
	if err := db.First(&phase, "id = ?", phaseID).Error; err != nil {
		return nil, errNotFound("フェーズが見つかりません")
	}

	week := models.Week{
		PhaseID:     phase.ID,
		Title:       utils.SanitizeText(title),
		Description: sanitizeOptionalText(description),
		OrderIndex:  orderIndex,
	}
	if err := db.Create(&week).Error; err != nil {
		log.Println("[ERROR] creating week:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("週の作成に失敗しました")
	}

	utils.Views.Invalidate(contentViews...)
	return &week, nil
}

// CreateContent adds a lesson item to a week. Video bodies must be YouTube
// URLs; text and exercise bodies are sanitized as markdown.
func CreateContent(db *gorm.DB, callerID uuid.UUID, weekID, contentType, title string, body *string, orderIndex int) (*models.Content, error) {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return nil, err
	}

	weekID, err := utils.ValidateUUID(weekID, "週ID")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	contentType, err = utils.ValidateEnum(contentType, contentTypes, "コンテンツタイプ")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	title, err = utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return nil, errValidation(err.Error())
	}
	orderIndex, err = utils.ValidateNumberRange(orderIndex, 0, 1000, "表示順")
	if err != nil {
		return nil, errValidation(err.Error())
	}

	body, err = sanitizeContentBody(contentType, body)
	if err != nil {
		return nil, err
	}

	var week models.Week
	if err := db.First(&week, "id = ?", weekID).Error; err != nil {
		return nil, errNotFound("週が見つかりません")
	}

	content := models.Content{
		WeekID:     week.ID,
		Type:       contentType,
		Title:      utils.SanitizeText(title),
		Body:       body,
		OrderIndex: orderIndex,
	}
	if err := db.Create(&content).Error; err != nil {
		log.Println("[ERROR] creating content:", utils.SanitizeForLog(err.Error()))
		return nil, errPersistence("コンテンツの作成に失敗しました")
	}

	utils.Views.Invalidate(contentViews...)
	return &content, nil
}

// UpdateContent replaces the mutable fields of a content. The parent week
// and the type stay fixed.
func UpdateContent(db *gorm.DB, callerID uuid.UUID, id, title string, body *string, orderIndex int) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	id, err := utils.ValidateUUID(id, "コンテンツID")
	if err != nil {
		return errValidation(err.Error())
	}
	title, err = utils.ValidateLength(title, 1, 200, "タイトル")
	if err != nil {
		return errValidation(err.Error())
	}
	orderIndex, err = utils.ValidateNumberRange(orderIndex, 0, 1000, "表示順")
	if err != nil {
		return errValidation(err.Error())
	}

	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		return errNotFound("コンテンツが見つかりません")
	}

	body, err = sanitizeContentBody(content.Type, body)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":       utils.SanitizeText(title),
		"body":        body,
		"order_index": orderIndex,
	}
	if err := db.Model(&content).Updates(updates).Error; err != nil {
		log.Println("[ERROR] updating content:", utils.SanitizeForLog(err.Error()))
		return errPersistence("コンテンツの更新に失敗しました")
	}

	utils.Views.Invalidate(contentViews...)
	return nil
}

func DeleteContent(db *gorm.DB, callerID uuid.UUID, id string) error {
	if _, err := VerifyInstructor(db, callerID); err != nil {
		return err
	}

	id, err := utils.ValidateUUID(id, "コンテンツID")
	if err != nil {
		return errValidation(err.Error())
	}

	if err := db.Delete(&models.Content{}, "id = ?", id).Error; err != nil {
		log.Println("[ERROR] deleting content:", utils.SanitizeForLog(err.Error()))
		return errPersistence("コンテンツの削除に失敗しました")
	}

	utils.Views.Invalidate(contentViews...)
	return nil
}

func sanitizeContentBody(contentType string, body *string) (*string, error) {
	if body == nil || *body == "" {
		return nil, nil
	}

	if contentType == models.ContentTypeVideo {
		validated, err := utils.ValidateYouTubeURL(*body, "動画URL")
		if err != nil {
			return nil, errValidation(err.Error())
		}
		return &validated, nil
	}

	sanitized := utils.SanitizeMarkdown(*body)
	return &sanitized, nil
}

func sanitizeOptionalText(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	sanitized := utils.SanitizeText(*value)
	return &sanitized
}
