// This file contains the admin hub handlers: the analytics dashboard and
// task management (create, edit, delete).
package handlers

import (
	"time"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/stats"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler handles all administrator-specific HTTP requests.
type AdminHandler struct {
	store     *store.Store
	validator *security.ValidationService
	logger    *security.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(st *store.Store, validator *security.ValidationService, logger *security.Logger) *AdminHandler {
	return &AdminHandler{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// Dashboard renders the admin hub: completion rate, top issue area, overdue
// count and the full task management table, plus the option lists the task
// form needs.
//
// Template: admin/dashboard.html
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	now := time.Now()

	views := make([]models.TaskView, 0, len(snapshot.Tasks))
	for _, t := range snapshot.Tasks {
		views = append(views, models.TaskView{
			Task:     t,
			Overdue:  stats.IsOverdue(t, now),
			DueLabel: t.DueDate.Format("Jan 2, 2006"),
		})
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":       "Admin Hub - Tech Manager",
		"UserName":    c.Locals("user_name"),
		"UserRole":    c.Locals("user_role"),
		"Stats":       stats.ComputeDashboardStats(snapshot.Tasks, snapshot.Reports, now),
		"Tasks":       views,
		"Categories":  []string{"Network", "Server", "Backup", "Security", "CCTV", "Email", "Hardware"},
		"Priorities":  []string{"High", "Medium", "Low"},
		"Frequencies": []string{"Daily", "Weekly", "Monthly", "One-time"},
		"Today":       now.Format("2006-01-02"),
		"Error":       c.Query("error"),
	})
}

// CreateTask creates a new task from the admin form and assigns it. New
// tasks always start Pending with an empty remark log.
//
// Form Data:
//   - title, description, category, priority, frequency, due_date (YYYY-MM-DD),
//     assigned_to, is_preventive ("on" when checked)
func (h *AdminHandler) CreateTask(c *fiber.Ctx) error {
	form := models.TaskForm{
		Title:        h.validator.SanitizeString(c.FormValue("title")),
		Description:  h.validator.SanitizeString(c.FormValue("description")),
		Category:     c.FormValue("category"),
		Priority:     c.FormValue("priority"),
		Frequency:    c.FormValue("frequency"),
		DueDate:      c.FormValue("due_date"),
		AssignedTo:   c.FormValue("assigned_to", "eng-1"),
		IsPreventive: c.FormValue("is_preventive") == "on",
	}

	if err := h.validateTaskForm(&form); err != nil {
		return c.Redirect("/admin/dashboard?error=invalid+task+form")
	}

	dueDate, err := time.Parse("2006-01-02", form.DueDate)
	if err != nil {
		return c.Redirect("/admin/dashboard?error=invalid+due+date")
	}

	task := models.Task{
		ID:           uuid.NewString(),
		Title:        form.Title,
		Description:  form.Description,
		Category:     models.TaskCategory(form.Category),
		Priority:     models.TaskPriority(form.Priority),
		Frequency:    models.TaskFrequency(form.Frequency),
		DueDate:      dueDate,
		Status:       models.StatusPending,
		AssignedTo:   form.AssignedTo,
		IsPreventive: form.IsPreventive,
	}

	if err := h.store.AddTask(task); err != nil {
		h.logger.Error("failed to add task", err)
		return c.Redirect("/admin/dashboard?error=could+not+create+task")
	}

	return c.Redirect("/admin/dashboard")
}

// UpdateTask applies a partial update to a task from the admin edit form.
// Only submitted fields are changed; everything else keeps its prior value.
func (h *AdminHandler) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")
	update := store.TaskUpdate{}

	if v := h.validator.SanitizeString(c.FormValue("title")); v != "" {
		if err := h.validator.ValidateTaskTitle(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+title")
		}
		update.Title = &v
	}
	if v := h.validator.SanitizeString(c.FormValue("description")); v != "" {
		if err := h.validator.ValidateTaskDescription(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+description")
		}
		update.Description = &v
	}
	if v := c.FormValue("category"); v != "" {
		if err := h.validator.ValidateCategory(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+category")
		}
		cat := models.TaskCategory(v)
		update.Category = &cat
	}
	if v := c.FormValue("priority"); v != "" {
		if err := h.validator.ValidatePriority(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+priority")
		}
		pri := models.TaskPriority(v)
		update.Priority = &pri
	}
	if v := c.FormValue("frequency"); v != "" {
		if err := h.validator.ValidateFrequency(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+frequency")
		}
		freq := models.TaskFrequency(v)
		update.Frequency = &freq
	}
	if v := c.FormValue("due_date"); v != "" {
		due, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+due+date")
		}
		update.DueDate = &due
	}
	if v := c.FormValue("status"); v != "" {
		if err := h.validator.ValidateStatus(v); err != nil {
			return c.Redirect("/admin/dashboard?error=invalid+status")
		}
		status := models.TaskStatus(v)
		update.Status = &status
	}
	if v := c.FormValue("assigned_to"); v != "" {
		update.AssignedTo = &v
	}

	if outcome := h.store.UpdateTask(id, update); outcome == store.NotFound {
		return c.Redirect("/admin/dashboard?error=task+not+found")
	}

	return c.Redirect("/admin/dashboard")
}

// DeleteTask removes a task permanently. Reports keep their snapshot counts;
// deleting a task never cascades.
func (h *AdminHandler) DeleteTask(c *fiber.Ctx) error {
	if outcome := h.store.DeleteTask(c.Params("id")); outcome == store.NotFound {
		return c.Redirect("/admin/dashboard?error=task+not+found")
	}

	return c.Redirect("/admin/dashboard")
}

// validateTaskForm runs all creation-form checks and returns the first
// failure.
func (h *AdminHandler) validateTaskForm(form *models.TaskForm) error {
	if err := h.validator.ValidateTaskTitle(form.Title); err != nil {
		return err
	}
	if err := h.validator.ValidateTaskDescription(form.Description); err != nil {
		return err
	}
	if err := h.validator.ValidateCategory(form.Category); err != nil {
		return err
	}
	if err := h.validator.ValidatePriority(form.Priority); err != nil {
		return err
	}
	if err := h.validator.ValidateFrequency(form.Frequency); err != nil {
		return err
	}
	if err := h.validator.ValidateDate(form.DueDate); err != nil {
		return err
	}
	return h.validator.ValidateRequired("assignee", form.AssignedTo)
}
