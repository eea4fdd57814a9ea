package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blog-service/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

type ImageHandler struct {
	images *storage.ImageStore
}

func NewImageHandler(images *storage.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload handles PUT /post-image. The image lands under the content directory
// with a generated filename; an optional oldPath form field names a
// superseded image to delete best-effort.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	if _, ok := Caller(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Authenticated!"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "No file provided!"})
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "Unsupported image type!"})
	}

	if oldPath := c.FormValue("oldPath"); oldPath != "" {
		h.images.RemoveLogged(oldPath)
	}

	filePath := h.images.NewPath(file.Filename)
	if err := c.SaveFile(file, filePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not store file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "File Stored",
		"filePath": filePath,
	})
}
