// This file contains the weekly report handlers: the scoped report list,
// report generation with snapshot counts, and admin approval.
package handlers

import (
	"strings"
	"time"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
	"github.com/balatechn/tech-manager/internal/stats"
	"github.com/balatechn/tech-manager/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReportHandler handles weekly report viewing, submission and approval.
type ReportHandler struct {
	store     *store.Store
	validator *security.ValidationService
	logger    *security.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(st *store.Store, validator *security.ValidationService, logger *security.Logger) *ReportHandler {
	return &ReportHandler{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// List renders the reports visible to the current user: all reports for
// admins, own submissions for engineers. Admins get an approve action on
// reports still pending approval.
//
// Template: reports/index.html
func (h *ReportHandler) List(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	scoped := stats.ScopeReports(h.store.Reports(), user.Role, user.ID)

	views := make([]models.ReportView, 0, len(scoped))
	for _, r := range scoped {
		views = append(views, models.ReportView{
			Report:         r,
			SubmittedLabel: r.SubmissionDate.Format("Jan 2, 2006"),
			CanApprove:     user.IsAdmin() && r.Status == models.ReportPendingApproval,
		})
	}

	return c.Render("reports/index", fiber.Map{
		"Title":    "Weekly Reports - Tech Manager",
		"UserName": user.Name,
		"UserRole": string(user.Role),
		"Reports":  views,
		"Error":    c.Query("error"),
	})
}

// ShowNew renders the report generation page with the aggregate counts the
// report will snapshot: assigned, completed and pending over the user's
// scoped task set.
//
// Template: reports/new.html
func (h *ReportHandler) ShowNew(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	scoped := stats.ScopeTasks(h.store.Tasks(), user.Role, user.ID)
	assigned, completed, pending := stats.ReportTotals(scoped)

	return c.Render("reports/new", fiber.Map{
		"Title":          "Generate Report - Tech Manager",
		"UserName":       user.Name,
		"UserRole":       string(user.Role),
		"WeekLabel":      time.Now().Format("Jan 2, 2006"),
		"TotalAssigned":  assigned,
		"TotalCompleted": completed,
		"PendingItems":   pending,
	})
}

// Submit creates a weekly report from the current task snapshot. The counts
// are computed here, at submission time; the store appends the record as-is.
// Critical issues are the non-empty lines of the submitted textarea.
//
// Form Data:
//   - critical_issues: multi-line free text, one issue per line
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	issuesText := c.FormValue("critical_issues")
	if err := h.validator.ValidateCriticalIssues(issuesText); err != nil {
		return c.Redirect("/reports/new?error=invalid+input")
	}

	scoped := stats.ScopeTasks(h.store.Tasks(), user.Role, user.ID)
	assigned, completed, pending := stats.ReportTotals(scoped)

	issues := []string{}
	for _, line := range strings.Split(issuesText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			issues = append(issues, line)
		}
	}

	now := time.Now()
	h.store.SubmitReport(models.Report{
		ID:             uuid.NewString(),
		WeekStarting:   now.Format("2006-01-02"),
		SubmittedBy:    user.ID,
		TotalAssigned:  assigned,
		TotalCompleted: completed,
		PendingItems:   pending,
		CriticalIssues: issues,
		Status:         models.ReportPendingApproval,
		SubmissionDate: now.UTC(),
	})

	return c.Redirect("/reports")
}

// Approve marks a report as approved. Admin only; approving twice is an
// idempotent success, a missing id surfaces as an error instead of a silent
// no-op.
func (h *ReportHandler) Approve(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if !user.IsAdmin() {
		h.logger.SecurityEvent(
			security.EventAccessDenied,
			user.ID,
			user.Name,
			c.IP(),
			c.Get("User-Agent"),
			map[string]any{"action": "approve_report"},
		)

		return c.Status(fiber.StatusForbidden).Render("denied", fiber.Map{
			"Title": "Access Denied - Tech Manager",
		}, "layouts/blank")
	}

	if outcome := h.store.ApproveReport(c.Params("id")); outcome == store.NotFound {
		return c.Redirect("/reports?error=report+not+found")
	}

	return c.Redirect("/reports")
}
