// Package handlers implements HTTP request handlers for Tech Manager.
// This file handles the passcode login flow and logout.
package handlers

import (
	"errors"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/services"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login and logout. Logging in replaces the session
// record in the state store; there is no cookie session to manage.
type AuthHandler struct {
	store    *store.Store
	identity services.IdentityProvider
	logger   *security.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(st *store.Store, identity services.IdentityProvider, logger *security.Logger) *AuthHandler {
	return &AuthHandler{
		store:    st,
		identity: identity,
		logger:   logger,
	}
}

// ShowLogin renders the login page. Already-authenticated users are sent to
// their dashboard instead.
//
// Template: web/templates/login.html with layouts/blank layout
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	if h.store.CurrentUser() != nil {
		return c.Redirect("/")
	}

	return c.Render("login", fiber.Map{
		"Title": "Login - Tech Manager",
	}, "layouts/blank")
}

// Login maps the submitted passcode to one of the fixed identities and
// records it as the session user. Invalid passcodes are rejected with no
// detail beyond "invalid" and logged as a security event.
//
// Form Data:
//   - passcode: demo passcode selecting the identity
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	passcode := c.FormValue("passcode")

	user, err := h.identity.Identify(passcode)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidPasscode) {
			return err
		}

		h.logger.SecurityEvent(
			security.EventLoginFailure,
			"", "",
			c.IP(),
			c.Get("User-Agent"),
			map[string]any{"error": "invalid_passcode"},
		)

		return c.Render("login", fiber.Map{
			"Title": "Login - Tech Manager",
			"Error": "Invalid passcode",
		}, "layouts/blank")
	}

	h.store.Login(*user)

	h.logger.SecurityEvent(
		security.EventLoginSuccess,
		user.ID,
		user.Name,
		c.IP(),
		c.Get("User-Agent"),
		map[string]any{"role": string(user.Role)},
	)

	if user.Role == models.RoleAdmin {
		return c.Redirect("/admin/dashboard")
	}
	return c.Redirect("/tasks")
}

// Logout clears the session record and redirects to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if user := h.store.CurrentUser(); user != nil {
		h.logger.SecurityEvent(
			security.EventLogout,
			user.ID,
			user.Name,
			c.IP(),
			c.Get("User-Agent"),
			nil,
		)
	}

	h.store.Logout()
	return c.Redirect("/login")
}
