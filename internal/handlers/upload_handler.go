package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadStore writes uploaded images to local disk under a public path
// prefix. Catalog entries only ever hold the resulting path string.
type UploadStore struct {
	Dir string
}

// SaveImage stores the uploaded file with a timestamped name and returns the
// public path it will be served under.
func (s *UploadStore) SaveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("image-%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(s.Dir, name)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// UploadHandler handles standalone image uploads from the seller dashboard.
type UploadHandler struct {
	store *UploadStore
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store *UploadStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, auth, seller fiber.Handler) {
	router.Post("/upload", auth, seller, h.HandleUpload)
}

// HandleUpload receives a multipart image and replies with its public path.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An image file is required",
			"error":   err.Error(),
		})
	}

	path, err := h.store.SaveImage(c, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store upload",
			"error":   err.Error(),
		})
	}
	return c.SendString(path)
}
