package handler

import (
	"errors"
	"io"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/entity"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// IconHandler serves the skill icon endpoints. Upload is multipart, listing
// returns data-URIs; update and delete reuse the generic resource handler.
type IconHandler struct {
	uc  *usecase.Icon
	res *ResourceHandler
}

func NewIconHandler(uc *usecase.Icon, res *ResourceHandler) *IconHandler {
	return &IconHandler{uc: uc, res: res}
}

func (h *IconHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/get", h.List)
	r.Post("/post", h.Upload)
	r.Put("/update/:id", h.res.Update)
	r.Delete("/delete/:id", h.res.Delete)
}

func (h *IconHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, err.Error(), err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *IconHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is required", err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is unreadable", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is unreadable", err)
	}

	id, err := h.uc.Upload(c.Context(), usecase.IconUpload{
		Name:        c.FormValue("name"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return middleware.NewAppError(fiber.StatusBadRequest, ve.Error(), err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, err.Error(), err)
	}

	return response.JSON(c, fiber.StatusCreated, fiber.Map{
		"id":       id,
		"filename": fh.Filename,
	})
}
