package controllers

import (
	"errors"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"`
}

// Register creates a student profile awaiting instructor approval and
// returns a token so the user can poll their approval state.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	email, err := utils.ValidateEmail(req.Email, "メールアドレス")
	if err != nil {
		return utils.UnprocessableEntity(c, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "アカウントの作成に失敗しました")
	}

	profile := models.Profile{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleStudent,
	}
	if name := utils.SanitizeText(req.Name); name != "" {
		profile.Name = &name
	}

	if err := ac.DB.Create(&profile).Error; err != nil {
		return utils.Conflict(c, "このメールアドレスは既に登録されています")
	}

	token, err := utils.GenerateJWTToken(profile.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "トークンの発行に失敗しました")
	}

	return utils.Created(c, fiber.Map{
		"token":   token,
		"profile": profile,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	email, err := utils.ValidateEmail(req.Email, "メールアドレス")
	if err != nil {
		return utils.Unauthorized(c, "メールアドレスまたはパスワードが違います")
	}

	var profile models.Profile
	if err := ac.DB.First(&profile, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "メールアドレスまたはパスワードが違います")
		}
		return utils.InternalServerError(c, "ログインに失敗しました")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return utils.Unauthorized(c, "メールアドレスまたはパスワードが違います")
	}

	token, err := utils.GenerateJWTToken(profile.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "トークンの発行に失敗しました")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":   token,
		"profile": profile,
	})
}

// Me returns the caller's profile.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	profile, err := services.ProfileByID(ac.DB, middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}
