package controllers

import (
	"strconv"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// Stats returns the composite instructor dashboard numbers.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(dc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	stats, err := services.DashboardStats(dc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}

func (dc *DashboardController) Distribution(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(dc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	distribution, err := services.ProgressDistribution(dc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, distribution)
}

func (dc *DashboardController) Trend(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(dc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	trend, err := services.SubmissionTrend(dc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, trend)
}

// PendingSubmissions returns the latest unreviewed submissions (?limit=n,
// default 5).
func (dc *DashboardController) PendingSubmissions(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(dc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		return utils.BadRequest(c, "limitの値が不正です")
	}

	digest, err := services.RecentPendingSubmissions(dc.DB, limit)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, digest)
}

func (dc *DashboardController) OverallProgress(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(dc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	stats, err := services.OverallProgressStats(dc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, stats)
}
