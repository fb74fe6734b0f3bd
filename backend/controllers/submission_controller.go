package controllers

import (
	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubmissionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubmissionController(db *gorm.DB, cfg *config.Config) *SubmissionController {
	return &SubmissionController{DB: db, Cfg: cfg}
}

type createSubmissionRequest struct {
	ContentID      string `json:"content_id" validate:"required"`
	SubmissionType string `json:"submission_type" validate:"required"`
	Body           string `json:"body" validate:"required"`
}

func (sc *SubmissionController) Create(c *fiber.Ctx) error {
	var req createSubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	submission, err := services.CreateSubmission(
		sc.DB, middleware.UserID(c),
		req.ContentID, req.SubmissionType, req.Body,
		sc.Cfg.AllowedSubmissionHosts,
	)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, submission)
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

func (sc *SubmissionController) AddFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	err := services.AddFeedback(sc.DB, middleware.UserID(c), c.Params("id"), req.Feedback)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

func (sc *SubmissionController) Delete(c *fiber.Ctx) error {
	if err := services.DeleteSubmission(sc.DB, middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, nil)
}

// ListMine returns the caller's own submissions.
func (sc *SubmissionController) ListMine(c *fiber.Ctx) error {
	submissions, err := services.SubmissionsForUser(sc.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submissions)
}

// ListAll returns all submissions; ?pending=true restricts to unreviewed.
func (sc *SubmissionController) ListAll(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(sc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	submissions, err := services.AllSubmissions(sc.DB, c.Query("pending") == "true")
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submissions)
}

func (sc *SubmissionController) Get(c *fiber.Ctx) error {
	if _, err := services.VerifyInstructor(sc.DB, middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}

	submission, err := services.SubmissionByID(sc.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, submission)
}
