// Package middleware provides HTTP middleware functions for authentication
// and authorization. The session record lives in the state store (it is part
// of the persisted blob and survives restarts), so both gates read the store
// rather than a cookie session.
//
// Enforcement here is advisory, per the design: the store itself has no
// authorization layer, and these gates only decide what a consumer may render
// or invoke.
package middleware

import (
	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired ensures a user is logged in. Requests without a session
// record are redirected to the login page.
//
// Context locals set for downstream handlers:
//   - user: the full *models.User record
//   - user_id, user_role, user_name: convenience accessors for templates
func AuthRequired(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := st.CurrentUser()
		if user == nil {
			return c.Redirect("/login")
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("user_role", string(user.Role))
		c.Locals("user_name", user.Name)

		return c.Next()
	}
}

// AdminOnly ensures the user holds the admin role. Must be chained after
// AuthRequired. Non-admins get an access-denied page, not a crash: the
// denial is a presentation state.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := c.Locals("user").(*models.User)
		if user == nil || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).Render("denied", fiber.Map{
				"Title": "Access Denied - Tech Manager",
			}, "layouts/blank")
		}

		return c.Next()
	}
}
