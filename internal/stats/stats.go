// Package stats implements the derived view-model computations: pure,
// side-effect-free functions over a state snapshot plus a role/identity
// argument. Every screen derives its numbers here; nothing in this package
// mutates state or touches the persistence layer, so all of it is
// deterministic and testable from plain slices.
package stats

import (
	"math"
	"time"

	"github.com/balatechn/tech-manager/internal/models"
)

// StatusFilterAll is the identity status filter: it matches every task.
const StatusFilterAll = "All"

// ScopeTasks returns the tasks visible to the given role and user: admins see
// all tasks, engineers only those assigned to them. The scope filter is
// applied before any other aggregation or display filter.
func ScopeTasks(tasks []models.Task, role models.Role, userID string) []models.Task {
	if role == models.RoleAdmin {
		return tasks
	}

	scoped := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo == userID {
			scoped = append(scoped, t)
		}
	}
	return scoped
}

// FilterByStatus returns the subset of tasks matching the status filter.
// StatusFilterAll (or an empty filter) returns the input unchanged.
func FilterByStatus(tasks []models.Task, filter string) []models.Task {
	if filter == "" || filter == StatusFilterAll {
		return tasks
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == filter {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// CompletionRate returns the completed share of a task set as a rounded
// integer percentage. An empty set has a rate of 0, never an error or NaN.
func CompletionRate(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// IsOverdue reports whether a task is overdue at the given instant: not
// completed and due strictly before now. Overdue status is time-dependent and
// must be recomputed on every read, never cached.
func IsOverdue(task models.Task, now time.Time) bool {
	return task.Status != models.StatusCompleted && task.DueDate.Before(now)
}

// OverdueCount returns the number of overdue tasks at the given instant.
func OverdueCount(tasks []models.Task, now time.Time) int {
	count := 0
	for _, t := range tasks {
		if IsOverdue(t, now) {
			count++
		}
	}
	return count
}

// TopCategory returns the category with the highest occurrence count among
// the tasks. Ties break to the category encountered first in slice order;
// an empty set yields "N/A".
func TopCategory(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "N/A"
	}

	counts := make(map[models.TaskCategory]int, len(tasks))
	for _, t := range tasks {
		counts[t.Category]++
	}

	top := ""
	best := 0
	for _, t := range tasks {
		if counts[t.Category] > best {
			best = counts[t.Category]
			top = string(t.Category)
		}
	}
	return top
}

// ScopeReports returns the reports visible to the given role and user:
// admins see all reports, engineers only their own submissions.
func ScopeReports(reports []models.Report, role models.Role, userID string) []models.Report {
	if role == models.RoleAdmin {
		return reports
	}

	scoped := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if r.SubmittedBy == userID {
			scoped = append(scoped, r)
		}
	}
	return scoped
}

// ReportTotals computes the aggregate counts a weekly report snapshots at
// submission time. Pending is assigned minus completed by construction.
func ReportTotals(tasks []models.Task) (assigned, completed, pending int) {
	assigned = len(tasks)
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	pending = assigned - completed
	return assigned, completed, pending
}

// DashboardStats bundles the system-wide metrics shown on the admin
// dashboard.
type DashboardStats struct {
	TotalTasks      int    // All tasks in the system
	CompletedCount  int    // Tasks with status Completed
	PendingCount    int    // Tasks with status Pending
	InProgressCount int    // Tasks with status In Progress
	OverdueCount    int    // Tasks past due without completion
	CompletionRate  int    // Percentage of completed tasks (0-100)
	TopCategory     string // Category with the most tasks, "N/A" if none
	PendingReports  int    // Reports awaiting approval
}

// ComputeDashboardStats derives the admin dashboard metrics from a snapshot
// at the given instant.
func ComputeDashboardStats(tasks []models.Task, reports []models.Report, now time.Time) DashboardStats {
	s := DashboardStats{
		TotalTasks:     len(tasks),
		CompletionRate: CompletionRate(tasks),
		OverdueCount:   OverdueCount(tasks, now),
		TopCategory:    TopCategory(tasks),
	}

	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.CompletedCount++
		case models.StatusInProgress:
			s.InProgressCount++
		case models.StatusPending:
			s.PendingCount++
		}
	}

	for _, r := range reports {
		if r.Status == models.ReportPendingApproval {
			s.PendingReports++
		}
	}

	return s
}

// EngineerStats bundles the personal metrics shown on the engineer's task
// board.
type EngineerStats struct {
	TotalAssigned  int // Tasks assigned to this engineer
	CompletedCount int // Completed among those
	PendingCount   int // Assigned minus completed
	OverdueCount   int // Overdue among those
	CompletionRate int // Personal completion rate percentage (0-100)
}

// ComputeEngineerStats derives an engineer's personal metrics from the tasks
// already scoped to that engineer.
func ComputeEngineerStats(scoped []models.Task, now time.Time) EngineerStats {
	assigned, completed, pending := ReportTotals(scoped)
	return EngineerStats{
		TotalAssigned:  assigned,
		CompletedCount: completed,
		PendingCount:   pending,
		OverdueCount:   OverdueCount(scoped, now),
		CompletionRate: CompletionRate(scoped),
	}
}
