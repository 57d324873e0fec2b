package handlers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/repository"
	"layout-planner/internal/planner/service"
)

// ============================================================
// Material Handler
// ============================================================

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

type MaterialHandler struct {
	repo    *repository.Repository
	storage *service.MaterialStorage
}

func NewMaterialHandler(repo *repository.Repository, storage *service.MaterialStorage) *MaterialHandler {
	return &MaterialHandler{repo: repo, storage: storage}
}

func (h *MaterialHandler) List(c fiber.Ctx) error {
	list, err := h.repo.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"materials": list})
}

func (h *MaterialHandler) Get(c fiber.Ctx) error {
	m, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"material":  m,
		"available": h.storage.Exists(m.Image),
	})
}

// GetImage отдаёт текстуру материала.
func (h *MaterialHandler) GetImage(c fiber.Ctx) error {
	m, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if !h.storage.Exists(m.Image) {
		return fail(c, apperrors.NotFound(apperrors.CodeMaterialNotFound, "image of material %s is missing", m.ID))
	}
	path, err := h.storage.ImagePath(m.Image)
	if err != nil {
		return fail(c, apperrors.Internal("%v", err))
	}

	c.Set("Content-Type", imageTypes[strings.ToLower(filepath.Ext(path))])
	return c.SendFile(path)
}

// UploadImage сохраняет текстуру материала и прописывает её в каталоге.
func (h *MaterialHandler) UploadImage(c fiber.Ctx) error {
	m, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, apperrors.Validation(apperrors.CodePayloadInvalid, "file required"))
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := imageTypes[ext]; !ok {
		return fail(c, apperrors.Validation(apperrors.CodePayloadInvalid, "invalid file type %q", ext))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, apperrors.Internal("open upload: %v", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fail(c, apperrors.Internal("read upload: %v", err))
	}

	m.Image = m.ID + ext
	if err := h.storage.SaveFile(m.Image, data); err != nil {
		log.Printf("[MATERIAL] save image error: %v", err)
		return fail(c, apperrors.Internal("failed to save file"))
	}
	if err := h.repo.Save(c.Context(), *m); err != nil {
		return fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"material": m})
}
