package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

type updateProgressRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Completed bool   `json:"completed"`
}

// Update upserts the caller's completion flag for one content. The row is
// always written for the authenticated caller, never for another user.
func (pc *ProgressController) Update(c *fiber.Ctx) error {
	var req updateProgressRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	progress, err := services.UpdateProgress(pc.DB, middleware.UserID(c), req.ContentID, req.Completed)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) ListMine(c *fiber.Ctx) error {
	progress, err := services.ProgressForUser(pc.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// Rate returns the caller's completion percentage over all contents.
func (pc *ProgressController) Rate(c *fiber.Ctx) error {
	rate, err := services.ProgressRate(pc.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"rate": rate})
}
