package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and profile routes
type AuthHandler struct {
	DB       *gorm.DB
	Provider services.IdentityProvider
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create an account at the identity provider and mirror the profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password, displayName"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.badinput")
	}
	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Email and password are required", fiber.StatusBadRequest, "validation.badinput")
	}

	uid, err := services.RegisterUser(h.DB, h.Provider, body.Email, body.Password, body.DisplayName)
	if err != nil {
		return serviceError(c, err, "auth.register")
	}

	log.Printf("Registered user %s", uid)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"uid":     uid,
		"message": "User registered successfully",
	})
}

// Login handles POST /api/auth/login
// @Summary Verify a user exists
// @Description Token issuance happens client-side against the identity provider
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "email, password"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.badinput")
	}
	if body.Email == "" {
		return utils.ErrorResponse(c, "Email is required", fiber.StatusBadRequest, "validation.badinput")
	}

	user, err := services.LookupUserByEmail(h.DB, body.Email)
	if err != nil {
		return serviceError(c, err, "auth.login")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Use the identity provider SDK on the frontend to get a token",
		"uid":     user.ID,
	})
}

// Me handles GET /api/auth/me
// @Summary Get the caller's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	profile, err := services.GetProfile(h.DB, userID)
	if err != nil {
		return serviceError(c, err, "auth.me")
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
