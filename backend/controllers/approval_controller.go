package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ApprovalController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewApprovalController(db *gorm.DB, cfg *config.Config) *ApprovalController {
	return &ApprovalController{DB: db, Cfg: cfg}
}

// ListPending returns student accounts awaiting approval.
func (pc *ApprovalController) ListPending(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(pc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	profiles, err := services.PendingUsers(pc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profiles)
}

// ListStudents returns every student account.
func (pc *ApprovalController) ListStudents(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(pc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	profiles, err := services.Students(pc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profiles)
}

func (pc *ApprovalController) Approve(c *fiber.Ctx) error {
	if err := services.ApproveUser(pc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

// Reject deletes the pending profile outright.
func (pc *ApprovalController) Reject(c *fiber.Ctx) error {
	if err := services.RejectUser(pc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

type approveBatchRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1"`
}

func (pc *ApprovalController) ApproveBatch(c *fiber.Ctx) error {
	var req approveBatchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := services.ApproveUsers(pc.DB, middleware.UserID(c), req.UserIDs); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}
