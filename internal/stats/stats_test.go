// This file contains unit tests for the derived view-model computations:
// scoping, filtering, completion rates, overdue detection, top category and
// the dashboard aggregates.
package stats

import (
	"testing"
	"time"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/stretchr/testify/assert"
)

func task(id string, status models.TaskStatus, category models.TaskCategory, assignedTo string) models.Task {
	return models.Task{
		ID:         id,
		Title:      "Task " + id,
		Status:     status,
		Category:   category,
		AssignedTo: assignedTo,
	}
}

func TestScopeTasks(t *testing.T) {
	tasks := []models.Task{
		task("1", models.StatusPending, models.CategoryNetwork, "eng-1"),
		task("2", models.StatusPending, models.CategoryServer, "eng-2"),
		task("3", models.StatusCompleted, models.CategoryBackup, "eng-1"),
	}

	t.Run("admin sees all tasks", func(t *testing.T) {
		assert.Len(t, ScopeTasks(tasks, models.RoleAdmin, "admin-1"), 3)
	})

	t.Run("engineer sees only own assignments", func(t *testing.T) {
		scoped := ScopeTasks(tasks, models.RoleEngineer, "eng-1")
		assert.Len(t, scoped, 2)
		for _, task := range scoped {
			assert.Equal(t, "eng-1", task.AssignedTo)
		}
	})
}

func TestFilterByStatus(t *testing.T) {
	tasks := []models.Task{
		task("1", models.StatusPending, models.CategoryNetwork, "eng-1"),
		task("2", models.StatusInProgress, models.CategoryServer, "eng-1"),
		task("3", models.StatusCompleted, models.CategoryBackup, "eng-1"),
	}

	assert.Len(t, FilterByStatus(tasks, StatusFilterAll), 3)
	assert.Len(t, FilterByStatus(tasks, ""), 3, "empty filter matches everything")
	assert.Len(t, FilterByStatus(tasks, "In Progress"), 1)
	assert.Len(t, FilterByStatus(tasks, "Pending"), 1)

	completed := FilterByStatus(tasks, "Completed")
	if assert.Len(t, completed, 1) {
		assert.Equal(t, "3", completed[0].ID)
	}
}

func TestCompletionRate(t *testing.T) {
	t.Run("empty set is zero", func(t *testing.T) {
		assert.Equal(t, 0, CompletionRate(nil))
		assert.Equal(t, 0, CompletionRate([]models.Task{}))
	})

	t.Run("one of four is 25 percent", func(t *testing.T) {
		tasks := []models.Task{
			task("1", models.StatusPending, models.CategorySecurity, "eng-1"),
			task("2", models.StatusInProgress, models.CategoryBackup, "eng-1"),
			task("3", models.StatusPending, models.CategoryServer, "eng-1"),
			task("4", models.StatusCompleted, models.CategoryCCTV, "eng-1"),
		}
		assert.Equal(t, 25, CompletionRate(tasks))
	})

	t.Run("rounds to nearest integer", func(t *testing.T) {
		third := []models.Task{
			task("1", models.StatusCompleted, models.CategoryNetwork, "eng-1"),
			task("2", models.StatusPending, models.CategoryNetwork, "eng-1"),
			task("3", models.StatusPending, models.CategoryNetwork, "eng-1"),
		}
		assert.Equal(t, 33, CompletionRate(third))

		twoThirds := []models.Task{
			task("1", models.StatusCompleted, models.CategoryNetwork, "eng-1"),
			task("2", models.StatusCompleted, models.CategoryNetwork, "eng-1"),
			task("3", models.StatusPending, models.CategoryNetwork, "eng-1"),
		}
		assert.Equal(t, 67, CompletionRate(twoThirds))
	})
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	pastDue := task("1", models.StatusPending, models.CategoryNetwork, "eng-1")
	pastDue.DueDate = now.Add(-time.Second)
	assert.True(t, IsOverdue(pastDue, now), "a second past due already counts")

	future := task("2", models.StatusPending, models.CategoryNetwork, "eng-1")
	future.DueDate = now.Add(time.Hour)
	assert.False(t, IsOverdue(future, now))

	completedLate := task("3", models.StatusCompleted, models.CategoryNetwork, "eng-1")
	completedLate.DueDate = now.Add(-24 * time.Hour)
	assert.False(t, IsOverdue(completedLate, now), "completed tasks are never overdue")

	dueExactlyNow := task("4", models.StatusPending, models.CategoryNetwork, "eng-1")
	dueExactlyNow.DueDate = now
	assert.False(t, IsOverdue(dueExactlyNow, now), "overdue means strictly before now")
}

func TestOverdueCount(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	late := task("1", models.StatusPending, models.CategoryNetwork, "eng-1")
	late.DueDate = now.Add(-time.Hour)
	lateButDone := task("2", models.StatusCompleted, models.CategoryNetwork, "eng-1")
	lateButDone.DueDate = now.Add(-time.Hour)
	onTime := task("3", models.StatusPending, models.CategoryNetwork, "eng-1")
	onTime.DueDate = now.Add(time.Hour)

	assert.Equal(t, 1, OverdueCount([]models.Task{late, lateButDone, onTime}, now))
}

func TestTopCategory(t *testing.T) {
	t.Run("empty set yields N/A", func(t *testing.T) {
		assert.Equal(t, "N/A", TopCategory(nil))
	})

	t.Run("highest count wins", func(t *testing.T) {
		tasks := []models.Task{
			task("1", models.StatusPending, models.CategoryNetwork, "eng-1"),
			task("2", models.StatusPending, models.CategoryServer, "eng-1"),
			task("3", models.StatusPending, models.CategoryServer, "eng-1"),
		}
		assert.Equal(t, "Server", TopCategory(tasks))
	})

	t.Run("tie breaks to first in slice order", func(t *testing.T) {
		tasks := []models.Task{
			task("1", models.StatusPending, models.CategorySecurity, "eng-1"),
			task("2", models.StatusPending, models.CategoryBackup, "eng-1"),
			task("3", models.StatusPending, models.CategoryBackup, "eng-1"),
			task("4", models.StatusPending, models.CategorySecurity, "eng-1"),
		}
		assert.Equal(t, "Security", TopCategory(tasks))
	})
}

func TestScopeReports(t *testing.T) {
	reports := []models.Report{
		{ID: "r1", SubmittedBy: "eng-1"},
		{ID: "r2", SubmittedBy: "eng-2"},
		{ID: "r3", SubmittedBy: "eng-1"},
	}

	assert.Len(t, ScopeReports(reports, models.RoleAdmin, "admin-1"), 3)

	own := ScopeReports(reports, models.RoleEngineer, "eng-1")
	assert.Len(t, own, 2)
	assert.Equal(t, "r1", own[0].ID)
	assert.Equal(t, "r3", own[1].ID)
}

func TestReportTotals(t *testing.T) {
	tasks := []models.Task{
		task("1", models.StatusPending, models.CategoryNetwork, "eng-1"),
		task("2", models.StatusInProgress, models.CategoryServer, "eng-1"),
		task("3", models.StatusPending, models.CategoryBackup, "eng-1"),
		task("4", models.StatusCompleted, models.CategoryCCTV, "eng-1"),
	}

	assigned, completed, pending := ReportTotals(tasks)
	assert.Equal(t, 4, assigned)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 3, pending, "pending counts in-progress tasks as not yet done")
}

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	overdue := task("1", models.StatusPending, models.CategorySecurity, "eng-1")
	overdue.DueDate = now.Add(-time.Hour)
	inProgress := task("2", models.StatusInProgress, models.CategoryBackup, "eng-1")
	inProgress.DueDate = now.Add(time.Hour)
	pending := task("3", models.StatusPending, models.CategoryServer, "eng-1")
	pending.DueDate = now.Add(time.Hour)
	done := task("4", models.StatusCompleted, models.CategorySecurity, "eng-1")
	done.DueDate = now.Add(-time.Hour)

	reports := []models.Report{
		{ID: "r1", Status: models.ReportPendingApproval},
		{ID: "r2", Status: models.ReportApproved},
	}

	got := ComputeDashboardStats([]models.Task{overdue, inProgress, pending, done}, reports, now)

	assert.Equal(t, DashboardStats{
		TotalTasks:      4,
		CompletedCount:  1,
		PendingCount:    2,
		InProgressCount: 1,
		OverdueCount:    1,
		CompletionRate:  25,
		TopCategory:     "Security",
		PendingReports:  1,
	}, got)
}

func TestComputeEngineerStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	late := task("1", models.StatusPending, models.CategoryNetwork, "eng-1")
	late.DueDate = now.Add(-time.Hour)
	done := task("2", models.StatusCompleted, models.CategoryNetwork, "eng-1")
	done.DueDate = now.Add(-time.Hour)

	got := ComputeEngineerStats([]models.Task{late, done}, now)

	assert.Equal(t, EngineerStats{
		TotalAssigned:  2,
		CompletedCount: 1,
		PendingCount:   1,
		OverdueCount:   1,
		CompletionRate: 50,
	}, got)
}

func TestComputeEngineerStats_EmptyScope(t *testing.T) {
	got := ComputeEngineerStats(nil, time.Now())
	assert.Equal(t, EngineerStats{}, got, "no assignments must yield all-zero stats, not a division error")
}
