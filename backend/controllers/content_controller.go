package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewContentController(db *gorm.DB, cfg *config.Config) *ContentController {
	return &ContentController{DB: db, Cfg: cfg}
}

func (cc *ContentController) ListPhases(c *fiber.Ctx) error {
	phases, err := services.AllPhases(cc.DB)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, phases)
}

func (cc *ContentController) ListWeeks(c *fiber.Ctx) error {
	weeks, err := services.WeeksByPhase(cc.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, weeks)
}

func (cc *ContentController) ListContents(c *fiber.Ctx) error {
	contents, err := services.ContentsByWeek(cc.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, contents)
}

func (cc *ContentController) Get(c *fiber.Ctx) error {
	content, err := services.ContentByID(cc.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, content)
}

type phaseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"order_index" validate:"min=0"`
}

func (cc *ContentController) CreatePhase(c *fiber.Ctx) error {
	var req phaseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	phase, err := services.CreatePhase(cc.DB, middleware.UserID(c), req.Title, req.Description, req.OrderIndex)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, phase)
}

type weekRequest struct {
	PhaseID     string  `json:"phase_id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"order_index" validate:"min=0"`
}

func (cc *ContentController) CreateWeek(c *fiber.Ctx) error {
	var req weekRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	week, err := services.CreateWeek(cc.DB, middleware.UserID(c), req.PhaseID, req.Title, req.Description, req.OrderIndex)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, week)
}

type createContentRequest struct {
	WeekID     string  `json:"week_id" validate:"required"`
	Type       string  `json:"type" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Body       *string `json:"body"`
	OrderIndex int     `json:"order_index" validate:"min=0"`
}

func (cc *ContentController) CreateContent(c *fiber.Ctx) error {
	var req createContentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	content, err := services.CreateContent(
		cc.DB, middleware.UserID(c),
		req.WeekID, req.Type, req.Title, req.Body, req.OrderIndex,
	)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, content)
}

type updateContentRequest struct {
	Title      string  `json:"title" validate:"required"`
	Body       *string `json:"body"`
	OrderIndex int     `json:"order_index" validate:"min=0"`
}

func (cc *ContentController) UpdateContent(c *fiber.Ctx) error {
	var req updateContentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	err := services.UpdateContent(cc.DB, middleware.UserID(c), c.Params("id"), req.Title, req.Body, req.OrderIndex)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (cc *ContentController) DeleteContent(c *fiber.Ctx) error {
	if err := services.DeleteContent(cc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}
