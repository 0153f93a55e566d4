package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skillbridge/readiness-api/internal/services"
	"skillbridge/readiness-api/pkg/apperror"
)

type UploadHandler struct {
	resume services.ResumeService
}

func NewUploadHandler(resume services.ResumeService) *UploadHandler {
	return &UploadHandler{
		resume: resume,
	}
}

// HandleUpload handles POST /upload-resume with multipart fields "resume" and "uuid".
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.BadRequest("Failed to parse multipart form")
	}

	files := form.File["resume"]
	ids := form.Value["uuid"]
	if len(files) == 0 || len(ids) == 0 {
		return apperror.BadRequest("Missing file or uuid")
	}

	id, err := parseProfileID(ids[0])
	if err != nil {
		return err
	}

	resp, err := h.resume.Upload(c.UserContext(), id, files[0])
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
