// Package server exposes the application over a fiber HTTP API.
package server

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grocery-planner/internal/auth"
	"grocery-planner/internal/grocery"
	"grocery-planner/internal/preferences"
	"grocery-planner/internal/pricing"
	"grocery-planner/internal/suggest"
)

// Server wires repositories, auth, and the suggestion pipeline into HTTP routes.
type Server struct {
	app    *fiber.App
	items  *grocery.Repository
	prefs  *preferences.Repository
	authn  *auth.PasswordAuthenticator
	tokens *auth.JWTManager
	cache  *suggest.Cache
	prices pricing.Source
	now    func() time.Time
}

// New creates the HTTP server and registers all routes.
func New(
	items *grocery.Repository,
	prefs *preferences.Repository,
	authn *auth.PasswordAuthenticator,
	tokens *auth.JWTManager,
	cache *suggest.Cache,
	prices pricing.Source,
	now func() time.Time,
) *Server {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s := &Server{
		app:    app,
		items:  items,
		prefs:  prefs,
		authn:  authn,
		tokens: tokens,
		cache:  cache,
		prices: prices,
		now:    now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Post("/auth/register", s.register)
	api.Post("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)

	authed.Get("/items", s.listItems)
	authed.Post("/items", s.createItem)
	authed.Put("/items/:id", s.updateItem)
	authed.Delete("/items/:id", s.deleteItem)
	authed.Post("/items/:id/toggle", s.togglePurchased)

	authed.Get("/preferences", s.getPreferences)
	authed.Put("/preferences", s.putPreferences)

	authed.Get("/stores", s.listStores)

	authed.Get("/suggestions", s.getSuggestions)
	authed.Post("/suggestions/accept", s.acceptSuggestion)

	authed.Get("/prices/:item", s.comparePrices)
	authed.Get("/plan", s.getPlan)
	authed.Get("/alerts/expiring", s.getExpirationAlerts)
}

// App returns the underlying fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}
