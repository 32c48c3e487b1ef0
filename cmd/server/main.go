// Package main is the entry point for the Tech Manager application.
// It wires the state store to a persistence backend, initializes the web
// server, and registers all HTTP routes.
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/balatechn/tech-manager/internal/config"
	"github.com/balatechn/tech-manager/internal/handlers"
	"github.com/balatechn/tech-manager/internal/middleware"
	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/services"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

func main() {
	cfg := config.Load()

	securityConfig := security.DefaultSecurityConfig()
	logger := security.NewLogger()

	// Select the persistence backend. Both store the same whole-state blob
	// under the same fixed key; sqlite adds transactional replacement.
	persister, cleanup, err := newPersister(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer cleanup()

	// The store loads persisted state or falls back to seed data; it never
	// fails startup over a bad blob.
	st := store.New(persister, logger)

	identity, err := services.NewPasscodeProvider(securityConfig.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	validator := security.NewValidationService(securityConfig)
	securityMiddleware := middleware.NewSecurityMiddleware(logger, securityConfig)

	// Login attempts are rate limited per IP.
	loginRateLimiter := security.NewRateLimiter(
		securityConfig.LoginRateLimit,
		12*time.Second, // 60s / 5 attempts
	)
	defer loginRateLimiter.Stop()

	// HTML template engine; templates live in ./web/templates.
	engine := html.New("./web/templates", ".html")
	if cfg.Env != "production" {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
	})

	app.Use(recover.New())
	app.Use(securityMiddleware.RequestLogger())
	app.Use(securityMiddleware.SecureHeaders())

	app.Static("/static", "./web/static")

	authHandler := handlers.NewAuthHandler(st, identity, logger)
	taskHandler := handlers.NewTaskHandler(st, validator, logger)
	reportHandler := handlers.NewReportHandler(st, validator, logger)
	adminHandler := handlers.NewAdminHandler(st, validator, logger)

	// Root route redirects based on the session record.
	app.Get("/", func(c *fiber.Ctx) error {
		user := st.CurrentUser()
		switch {
		case user == nil:
			return c.Redirect("/login")
		case user.Role == models.RoleAdmin:
			return c.Redirect("/admin/dashboard")
		default:
			return c.Redirect("/tasks")
		}
	})

	// Public routes.
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login",
		securityMiddleware.RateLimit(loginRateLimiter, "login"),
		authHandler.Login,
	)
	app.Get("/logout", authHandler.Logout)

	// Task board (both roles).
	tasks := app.Group("/tasks", middleware.AuthRequired(st))
	tasks.Get("/", taskHandler.List)
	tasks.Post("/:id/status", taskHandler.UpdateStatus)
	tasks.Post("/:id/remarks", taskHandler.AddRemark)

	// Weekly reports (both roles; approval is admin-gated in the handler).
	reports := app.Group("/reports", middleware.AuthRequired(st))
	reports.Get("/", reportHandler.List)
	reports.Get("/new", reportHandler.ShowNew)
	reports.Post("/", reportHandler.Submit)
	reports.Post("/:id/approve", reportHandler.Approve)

	// Admin hub (admin role only).
	admin := app.Group("/admin",
		middleware.AuthRequired(st),
		middleware.AdminOnly(),
	)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/tasks", adminHandler.CreateTask)
	admin.Post("/tasks/:id/update", adminHandler.UpdateTask)
	admin.Post("/tasks/:id/delete", adminHandler.DeleteTask)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	logger.Info("Tech Manager server starting on http://localhost:" + port)

	if err := app.Listen(":" + port); err != nil {
		logger.Critical("Failed to start server", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newPersister builds the configured persistence backend and a cleanup
// function for shutdown.
func newPersister(cfg *config.Config) (store.Persister, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		p, err := store.NewSQLitePersister(filepath.Join(cfg.DataDir, "tech-manager.db"))
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil
	default:
		p, err := store.NewFilePersister(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {}, nil
	}
}
