package controllers

import (
	"errors"

	"lms/backend/services"
	"lms/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseBody binds the JSON body into dst and runs the struct tag validation.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "入力内容を確認してください")
	}
	return nil
}

// respondError maps a service error to its HTTP status. Unknown errors are
// treated as persistence failures so nothing internal leaks to the caller.
func respondError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return utils.Error(c, fiberErr.Code, fiberErr.Message)
	}

	var actionErr *services.ActionError
	if !errors.As(err, &actionErr) {
		return utils.InternalServerError(c, "処理に失敗しました")
	}

	switch actionErr.Kind {
	case services.KindUnauthenticated:
		return utils.Unauthorized(c, actionErr.Message)
	case services.KindForbidden:
		return utils.Forbidden(c, actionErr.Message)
	case services.KindValidation:
		return utils.UnprocessableEntity(c, actionErr.Message)
	case services.KindNotFound:
		return utils.NotFound(c, actionErr.Message)
	case services.KindInvalidState:
		return utils.Conflict(c, actionErr.Message)
	default:
		return utils.InternalServerError(c, actionErr.Message)
	}
}
