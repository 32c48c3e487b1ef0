// This file provides the shared test harness for handler tests: an app with
// the real templates and routes wired the way the server wires them, backed
// by an in-memory persister.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/balatechn/tech-manager/internal/middleware"
	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/services"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memPersister is a throwaway in-memory Persister for handler tests.
type memPersister struct {
	state *store.State
}

func (m *memPersister) Load() (*store.State, error) {
	if m.state == nil {
		return nil, store.ErrNoState
	}
	return m.state, nil
}

func (m *memPersister) Save(state *store.State) error {
	m.state = state
	return nil
}

type testApp struct {
	app   *fiber.App
	store *store.Store
}

// newTestApp builds an app with the production routes and templates, seeded
// with the fixed seed state.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := security.NewLogger()
	validator := security.NewValidationService(security.DefaultSecurityConfig())
	st := store.New(&memPersister{}, logger)

	identity, err := services.NewPasscodeProvider(bcrypt.MinCost)
	require.NoError(t, err)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
	})

	authHandler := NewAuthHandler(st, identity, logger)
	taskHandler := NewTaskHandler(st, validator, logger)
	reportHandler := NewReportHandler(st, validator, logger)
	adminHandler := NewAdminHandler(st, validator, logger)

	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	tasks := app.Group("/tasks", middleware.AuthRequired(st))
	tasks.Get("/", taskHandler.List)
	tasks.Post("/:id/status", taskHandler.UpdateStatus)
	tasks.Post("/:id/remarks", taskHandler.AddRemark)

	reports := app.Group("/reports", middleware.AuthRequired(st))
	reports.Get("/", reportHandler.List)
	reports.Get("/new", reportHandler.ShowNew)
	reports.Post("/", reportHandler.Submit)
	reports.Post("/:id/approve", reportHandler.Approve)

	admin := app.Group("/admin", middleware.AuthRequired(st), middleware.AdminOnly())
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/tasks", adminHandler.CreateTask)
	admin.Post("/tasks/:id/update", adminHandler.UpdateTask)
	admin.Post("/tasks/:id/delete", adminHandler.DeleteTask)

	return &testApp{app: app, store: st}
}

func (ta *testApp) loginAs(role models.Role) {
	if role == models.RoleAdmin {
		ta.store.Login(models.User{ID: "admin-1", Name: "Bala (Manager)", Role: models.RoleAdmin})
		return
	}
	ta.store.Login(models.User{ID: "eng-1", Name: "System Engineer", Role: models.RoleEngineer})
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (ta *testApp) taskByID(t *testing.T, id string) models.Task {
	t.Helper()
	for _, task := range ta.store.Tasks() {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %q not found", id)
	return models.Task{}
}
