package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/utils"
	"gorm.io/gorm"
)

// ChatHandler handles chat and history routes
type ChatHandler struct {
	DB   *gorm.DB
	Chat *services.ChatService
}

// historyEntry is the API shape of one logged message.
type historyEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Post handles POST /api/chat/:id
// @Summary Send a chat message
// @Description Runs one chat exchange against the project's agent and returns the assistant reply
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param body body object true "message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 504 {object} utils.ErrorResponseStruct
// @Router /chat/{id} [post]
func (h *ChatHandler) Post(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	var body struct {
		Message string `json:"message"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.badinput")
	}
	if body.Message == "" {
		return utils.ErrorResponse(c, "Message is required", fiber.StatusBadRequest, "validation.badinput")
	}

	response, err := h.Chat.HandleChat(c.UserContext(), c.Params("id"), userID, body.Message)
	if err != nil {
		return serviceError(c, err, "chat.completion")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}

// History handles GET /api/chat/:id/history
// @Summary Get chat history
// @Description Returns the project's full ordered message log, oldest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /chat/{id}/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projectID := c.Params("id")
	if _, err := services.ProjectOwned(h.DB, projectID, userID); err != nil {
		return serviceError(c, err, "chat.history")
	}

	messages, err := services.AllMessages(h.DB, projectID)
	if err != nil {
		return serviceError(c, err, "chat.history")
	}

	history := make([]historyEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, historyEntry{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"history": history})
}
