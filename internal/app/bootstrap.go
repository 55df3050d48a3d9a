package app

import (
	"fmt"
	"strings"

	"portfolio-api/internal/config"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"
	"portfolio-api/internal/mail"
	"portfolio-api/internal/store"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, st store.Store, mailer mail.Mailer) *App {
	f := fiber.New(fiber.Config{})

	registerGlobalMiddleware(f, cfg)
	routes.NewRegistry(st, mailer, cfg.SMTP.Sender).Register(f)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, container.Store, container.Mailer)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.App.CORSOrigins),
	}))
	app.Use(middleware.NewAccessLogMiddleware(nil).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func corsOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
