package handler

import (
	"go-stock-api/internal/media"

	"github.com/gofiber/fiber/v2"
)

type MediaHandler struct {
	store media.Store
}

func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// Upload stores a single image and returns its path and serving URL.
// POST /api/v1/images/upload (multipart: image, folder?)
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":  "validation_error",
			"error": "image file is required",
		})
	}

	folder := c.FormValue("folder", "images")
	path, err := h.store.Put(file, folder)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"data": fiber.Map{
			"path": path,
			"url":  h.store.URL(path),
			"size": file.Size,
		},
	})
}

// UploadMultiple stores a batch of images. The batch is all-or-nothing:
// when one file is rejected, the already-stored ones are removed again.
// POST /api/v1/images/upload-multiple (multipart: images[], folder?)
func (h *MediaHandler) UploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":  "validation_error",
			"error": "at least one image file is required",
		})
	}

	folder := c.FormValue("folder", "images")
	uploaded := make([]fiber.Map, 0, len(form.File["images"]))
	var paths []string

	for _, file := range form.File["images"] {
		path, err := h.store.Put(file, folder)
		if err != nil {
			for _, p := range paths {
				h.store.Delete(p)
			}
			return respondError(c, err)
		}
		paths = append(paths, path)
		uploaded = append(uploaded, fiber.Map{
			"path": path,
			"url":  h.store.URL(path),
			"size": file.Size,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Images uploaded successfully",
		"data":    uploaded,
	})
}

// Delete removes an image by path.
// DELETE /api/v1/images (body: {path})
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":  "validation_error",
			"error": "path is required",
		})
	}

	if !h.store.Delete(req.Path) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":  "not_found",
			"error": "image not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Image deleted successfully"})
}

// List returns the stored image paths under a folder.
// GET /api/v1/images?folder
func (h *MediaHandler) List(c *fiber.Ctx) error {
	paths, err := h.store.List(c.Query("folder", "images"))
	if err != nil {
		return respondError(c, err)
	}

	urls := make([]fiber.Map, len(paths))
	for i, p := range paths {
		urls[i] = fiber.Map{"path": p, "url": h.store.URL(p)}
	}
	return c.JSON(fiber.Map{"data": urls})
}
