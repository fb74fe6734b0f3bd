package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationController(db *gorm.DB, cfg *config.Config) *NotificationController {
	return &NotificationController{DB: db, Cfg: cfg}
}

func (nc *NotificationController) List(c *fiber.Ctx) error {
	notifications, err := services.NotificationsFor(nc.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, notifications)
}

func (nc *NotificationController) UnreadCount(c *fiber.Ctx) error {
	count, err := services.UnreadNotificationCount(nc.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"unread": count})
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	if err := services.MarkNotificationAsRead(nc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	if err := services.MarkAllNotificationsAsRead(nc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (nc *NotificationController) Delete(c *fiber.Ctx) error {
	if err := services.DeleteNotification(nc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}
