// Package response writes the wire shapes: entity JSON on success and a
// {"detail": ...} object on failure.
package response

import "github.com/gofiber/fiber/v3"

type ErrorBody struct {
	Detail string `json:"detail"`
}

const (
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageInternalServerError = "internal server error"
)

func JSON(c fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c fiber.Ctx, status int, detail string) error {
	if detail == "" {
		detail = defaultDetailForStatus(status)
	}
	return c.Status(status).JSON(ErrorBody{Detail: detail})
}

func defaultDetailForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	default:
		return MessageInternalServerError
	}
}
