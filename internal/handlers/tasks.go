// This file contains the task board handlers: the role-scoped task list with
// status tabs, status changes, and remark appending. Both roles use these
// routes; engineers see only their own assignments, admins see everything.
package handlers

import (
	"fmt"
	"time"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/stats"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
)

// remarkStampLayout is the human-readable timestamp prefixed to every remark
// line, e.g. "[Aug 30, 2026, 2:15:04 PM] Replaced cable."
const remarkStampLayout = "Jan 2, 2006, 3:04:05 PM"

// TaskHandler handles the task board for both roles.
type TaskHandler struct {
	store     *store.Store
	validator *security.ValidationService
	logger    *security.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(st *store.Store, validator *security.ValidationService, logger *security.Logger) *TaskHandler {
	return &TaskHandler{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// List renders the task board: tasks scoped to the current user, optionally
// narrowed by the status tab, with personal stats and overdue badges.
//
// Query Params:
//   - status: All | Pending | In Progress | Completed (default All)
//
// Template: tasks/index.html
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	scoped := stats.ScopeTasks(h.store.Tasks(), user.Role, user.ID)
	filter := c.Query("status", stats.StatusFilterAll)
	filtered := stats.FilterByStatus(scoped, filter)

	now := time.Now()
	views := make([]models.TaskView, 0, len(filtered))
	for _, t := range filtered {
		views = append(views, models.TaskView{
			Task:     t,
			Overdue:  stats.IsOverdue(t, now),
			DueLabel: t.DueDate.Format("Jan 2, 2006"),
		})
	}

	return c.Render("tasks/index", fiber.Map{
		"Title":    "My Tasks - Tech Manager",
		"UserName": user.Name,
		"UserRole": string(user.Role),
		"Tasks":    views,
		"Filter":   filter,
		"Filters":  []string{stats.StatusFilterAll, "Pending", "In Progress", "Completed"},
		"Stats":    stats.ComputeEngineerStats(scoped, now),
		"Error":    c.Query("error"),
	})
}

// UpdateStatus changes a task's workflow status. Moving to Completed stamps
// the completion date; moving away clears it (the store owns that coupling).
//
// Form Data:
//   - status: Pending | In Progress | Completed
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	statusValue := c.FormValue("status")

	if err := h.validator.ValidateStatus(statusValue); err != nil {
		return c.Redirect("/tasks?error=invalid+status")
	}

	status := models.TaskStatus(statusValue)
	if outcome := h.store.UpdateTask(id, store.TaskUpdate{Status: &status}); outcome == store.NotFound {
		return c.Redirect("/tasks?error=task+not+found")
	}

	return c.Redirect("/tasks")
}

// AddRemark appends a timestamped line to a task's remark log. The log is
// append-only: prior content is never edited, the new line is concatenated
// after a newline separator.
//
// Form Data:
//   - remark: free text to append
func (h *TaskHandler) AddRemark(c *fiber.Ctx) error {
	id := c.Params("id")
	text := h.validator.SanitizeString(c.FormValue("remark"))

	if err := h.validator.ValidateRemark(text); err != nil {
		return c.Redirect("/tasks?error=invalid+remark")
	}

	var existing string
	for _, t := range h.store.Tasks() {
		if t.ID == id {
			existing = t.Remarks
			break
		}
	}

	entry := fmt.Sprintf("[%s] %s", time.Now().Format(remarkStampLayout), text)
	remarks := entry
	if existing != "" {
		remarks = existing + "\n" + entry
	}

	if outcome := h.store.UpdateTask(id, store.TaskUpdate{Remarks: &remarks}); outcome == store.NotFound {
		return c.Redirect("/tasks?error=task+not+found")
	}

	return c.Redirect("/tasks")
}
