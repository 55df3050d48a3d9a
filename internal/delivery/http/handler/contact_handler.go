package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/entity"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc *usecase.Contact
}

func NewContactHandler(uc *usecase.Contact) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/post", h.Send)
}

func (h *ContactHandler) Send(c fiber.Ctx) error {
	var req usecase.ContactInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "body must be a JSON object", err)
	}

	if err := h.uc.Send(c.Context(), req); err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return middleware.NewAppError(fiber.StatusBadRequest, ve.Error(), err)
		}
		// Transport detail stays in the server log.
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to send email", err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{"message": "Email sent successfully"})
}
