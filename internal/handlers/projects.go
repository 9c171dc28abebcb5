package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/utils"
	"gorm.io/gorm"
)

// ProjectHandler handles project routes
type ProjectHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/projects
// @Summary Create a project
// @Description Create an agent configuration owned by the caller
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "name, systemPrompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	var body struct {
		Name         string `json:"name"`
		SystemPrompt string `json:"systemPrompt"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "validation.badinput")
	}
	if body.Name == "" {
		return utils.ErrorResponse(c, "Project name is required", fiber.StatusBadRequest, "validation.badinput")
	}

	project, err := services.CreateProject(h.DB, userID, body.Name, body.SystemPrompt)
	if err != nil {
		return serviceError(c, err, "projects.create")
	}

	log.Printf("Created project %s for user %s", project.ID, userID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"projectId": project.ID,
		"message":   "Project created successfully",
	})
}

// List handles GET /api/projects
// @Summary List the caller's projects
// @Description Projects are returned newest first
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projects, err := services.ListProjects(h.DB, userID)
	if err != nil {
		return serviceError(c, err, "projects.list")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"projects": projects})
}

// Get handles GET /api/projects/:id
// @Summary Fetch one project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} services.ProjectView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	project, err := services.ProjectOwned(h.DB, c.Params("id"), userID)
	if err != nil {
		return serviceError(c, err, "projects.get")
	}

	return c.Status(fiber.StatusOK).JSON(services.ProjectViewOf(project))
}

// Delete handles DELETE /api/projects/:id
// @Summary Delete a project
// @Description Deletes the project and cascades to its messages and files
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projectID := c.Params("id")
	if _, err := services.ProjectOwned(h.DB, projectID, userID); err != nil {
		return serviceError(c, err, "projects.delete")
	}

	if err := services.DeleteProject(h.DB, projectID); err != nil {
		return serviceError(c, err, "projects.delete")
	}

	log.Printf("Deleted project %s", projectID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Project deleted",
	})
}
