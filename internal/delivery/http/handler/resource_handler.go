package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/entity"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ResourceHandler exposes the shared CRUD surface for one entity:
// GET /get, POST /post, PUT /update/:id, DELETE /delete/:id. Singleton
// entities update without an id.
type ResourceHandler struct {
	uc *usecase.Resource
}

func NewResourceHandler(uc *usecase.Resource) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

func (h *ResourceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/get", h.List)
	r.Post("/post", h.Create)
	if h.uc.Schema().Singleton {
		r.Put("/update", h.Update)
	} else {
		r.Put("/update/:id", h.Update)
	}
	r.Delete("/delete/:id", h.Delete)
}

func (h *ResourceHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return h.mapError(err, "")
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *ResourceHandler) Create(c fiber.Ctx) error {
	created, err := h.uc.Create(c.Context(), c.Body())
	if err != nil {
		return h.mapError(err, "")
	}
	return response.JSON(c, fiber.StatusCreated, created)
}

func (h *ResourceHandler) Update(c fiber.Ctx) error {
	updated, err := h.uc.Update(c.Context(), c.Params("id"), c.Body())
	if err != nil {
		detail := h.uc.Schema().Name + " not found or no changes made"
		if h.uc.Schema().Singleton {
			detail = h.uc.Schema().Name + " not found"
		}
		return h.mapError(err, detail)
	}
	return response.JSON(c, fiber.StatusOK, updated)
}

func (h *ResourceHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.mapError(err, h.uc.Schema().Name+" not found")
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"detail": h.uc.Schema().Name + " deleted successfully",
	})
}

// mapError translates usecase errors into AppErrors; notFoundDetail carries
// the operation-specific 404 wording.
func (h *ResourceHandler) mapError(err error, notFoundDetail string) error {
	name := h.uc.Schema().Name

	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		return middleware.NewAppError(fiber.StatusBadRequest, ve.Error(), err)
	case errors.Is(err, usecase.ErrInvalidID):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid ID format", err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusBadRequest, name+" already exists", err)
	case errors.Is(err, usecase.ErrNotFound):
		if notFoundDetail == "" {
			notFoundDetail = name + " not found"
		}
		return middleware.NewAppError(fiber.StatusNotFound, notFoundDetail, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, err.Error(), err)
	}
}
