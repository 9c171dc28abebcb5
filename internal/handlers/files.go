package handlers

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/utils"
	"gorm.io/gorm"
)

// FileHandler handles file routes
type FileHandler struct {
	DB *gorm.DB
}

// Upload handles POST /api/projects/:id/files
// @Summary Upload a file to a project
// @Description Multipart upload, at most 10MiB, stored base64-encoded
// @Tags Files
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "File to upload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/files [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projectID := c.Params("id")
	if _, err := services.ProjectOwned(h.DB, projectID, userID); err != nil {
		return serviceError(c, err, "files.upload")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "File is required", fiber.StatusBadRequest, "validation.badinput")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, "Failed to read file", fiber.StatusBadRequest, "validation.badinput")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to read file", fiber.StatusBadRequest, "validation.badinput")
	}

	file, err := services.SaveFile(h.DB, projectID, userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		return serviceError(c, err, "files.upload")
	}

	log.Printf("Uploaded file %s (%d bytes) to project %s", file.Filename, file.Size, projectID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"fileId":      file.ID,
		"filename":    file.Filename,
		"size":        file.Size,
		"contentType": file.ContentType,
	})
}

// List handles GET /api/projects/:id/files
// @Summary List a project's files
// @Description File payloads are omitted from listings
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projectID := c.Params("id")
	if _, err := services.ProjectOwned(h.DB, projectID, userID); err != nil {
		return serviceError(c, err, "files.list")
	}

	files, err := services.ListFiles(h.DB, projectID, userID)
	if err != nil {
		return serviceError(c, err, "files.list")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"projectId": projectID,
		"count":     len(files),
		"files":     files,
	})
}

// Delete handles DELETE /api/projects/:id/files/:fid
// @Summary Delete one file
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param fid path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/files/{fid} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.unknown")
	}

	projectID := c.Params("id")
	fileID := c.Params("fid")

	if _, err := services.ProjectOwned(h.DB, projectID, userID); err != nil {
		return serviceError(c, err, "files.delete")
	}
	if _, err := services.FileInProject(h.DB, fileID, projectID); err != nil {
		return serviceError(c, err, "files.delete")
	}

	if err := services.DeleteFile(h.DB, fileID); err != nil {
		return serviceError(c, err, "files.delete")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"fileId":  fileID,
		"message": "File deleted successfully",
	})
}
