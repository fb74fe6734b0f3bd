package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnnouncementController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnnouncementController(db *gorm.DB, cfg *config.Config) *AnnouncementController {
	return &AnnouncementController{DB: db, Cfg: cfg}
}

// ListPublished returns the announcements visible to students.
func (ac *AnnouncementController) ListPublished(c *fiber.Ctx) error {
	announcements, err := services.PublishedAnnouncements(ac.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, announcements)
}

// ListAll returns every announcement, drafts included.
func (ac *AnnouncementController) ListAll(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(ac.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	announcements, err := services.AllAnnouncements(ac.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, announcements)
}

type announcementRequest struct {
	Title      string `json:"title" validate:"required"`
	Body       string `json:"body" validate:"required"`
	PublishNow bool   `json:"publish_now"`
}

func (ac *AnnouncementController) Create(c *fiber.Ctx) error {
	var req announcementRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	announcement, err := services.CreateAnnouncement(ac.DB, middleware.UserID(c), req.Title, req.Body, req.PublishNow)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, announcement)
}

func (ac *AnnouncementController) Update(c *fiber.Ctx) error {
	var req announcementRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	err := services.UpdateAnnouncement(ac.DB, middleware.UserID(c), c.Params("id"), req.Title, req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (ac *AnnouncementController) Publish(c *fiber.Ctx) error {
	if err := services.PublishAnnouncement(ac.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (ac *AnnouncementController) Unpublish(c *fiber.Ctx) error {
	if err := services.UnpublishAnnouncement(ac.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (ac *AnnouncementController) Delete(c *fiber.Ctx) error {
	if err := services.DeleteAnnouncement(ac.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}
