package services

import (
	"errors"

	"lms/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorization guards. Every mutating action calls its guard before any
// payload validation, so authorization failures short-circuit first.

// VerifyInstructor confirms the caller exists and holds the instructor role.
func VerifyInstructor(db *gorm.DB, callerID uuid.UUID) (*models.Profile, error) {
	return verifyProfile(db, callerID, func(p *models.Profile) bool {
		return p.Role == models.RoleInstructor
	})
}

// VerifyApprovedStudent confirms the caller is a student whose account has
// been approved.
func VerifyApprovedStudent(db *gorm.DB, callerID uuid.UUID) (*models.Profile, error) {
	return verifyProfile(db, callerID, func(p *models.Profile) bool {
		return p.Role == models.RoleStudent && p.Approved
	})
}

func verifyProfile(db *gorm.DB, callerID uuid.UUID, allowed func(*models.Profile) bool) (*models.Profile, error) {
	if callerID == uuid.Nil {
		return nil, errUnauthenticated()
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errForbidden()
		}
		return nil, errPersistence("ユーザー情報の取得に失敗しました")
	}

	if !allowed(&profile) {
		return nil, errForbidden()
	}

	return &profile, nil
}

// requireAuthenticated checks only that a caller identity was resolved.
func requireAuthenticated(callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return errUnauthenticated()
	}
	return nil
}
