package routes

import (
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/entity"
	"portfolio-api/internal/mail"
	"portfolio-api/internal/store"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Registry wires every resource group onto the app. One group per resource,
// all backed by the same injected store.
type Registry struct {
	store  store.Store
	mailer mail.Mailer
	sender string
}

func NewRegistry(st store.Store, mailer mail.Mailer, sender string) *Registry {
	return &Registry{store: st, mailer: mailer, sender: sender}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return response.JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	resources := []struct {
		prefix string
		schema entity.Schema
	}{
		{"/personals", entity.Personal},
		{"/educations", entity.Education},
		{"/experiences", entity.Experience},
		{"/certificates", entity.Certificate},
		{"/projects", entity.Project},
		{"/phones", entity.Phone},
	}
	for _, res := range resources {
		h := handler.NewResourceHandler(usecase.NewResource(r.store, res.schema))
		h.RegisterRoutes(app.Group(res.prefix))
	}

	skillRes := handler.NewResourceHandler(usecase.NewResource(r.store, entity.Skill))
	iconHandler := handler.NewIconHandler(usecase.NewIcon(r.store), skillRes)
	iconHandler.RegisterRoutes(app.Group("/skills"))

	contactHandler := handler.NewContactHandler(usecase.NewContact(r.mailer, r.sender))
	contactHandler.RegisterRoutes(app.Group("/contact"))
}
