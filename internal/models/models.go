// Package models defines the domain entities and data transfer objects for Tech Manager.
// It includes the persisted state entities (tasks, reports, the session user),
// form DTOs for user input, and view models for template rendering.
package models

import "time"

// ============================================================================
// Domain Models (Persisted State Entities)
// ============================================================================

// Role identifies the capability set of a logged-in user.
// Exactly two roles exist: administrators manage the full task list and
// approve reports, engineers work their own assignments.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEngineer Role = "Engineer"
)

// TaskStatus is the workflow state of a maintenance task.
// Tasks start Pending and move freely between the three states.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// TaskPriority is the urgency level assigned to a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// TaskCategory is the infrastructure area a task belongs to.
// The fixed set doubles as the vocabulary for the "top issue area" metric.
type TaskCategory string

const (
	CategoryNetwork  TaskCategory = "Network"
	CategoryServer   TaskCategory = "Server"
	CategoryBackup   TaskCategory = "Backup"
	CategorySecurity TaskCategory = "Security"
	CategoryCCTV     TaskCategory = "CCTV"
	CategoryEmail    TaskCategory = "Email"
	CategoryHardware TaskCategory = "Hardware"
)

// TaskFrequency is an informational recurrence hint.
// Nothing in the system schedules recurring tasks from it.
type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "Daily"
	FrequencyWeekly  TaskFrequency = "Weekly"
	FrequencyMonthly TaskFrequency = "Monthly"
	FrequencyOneTime TaskFrequency = "One-time"
)

// ReportStatus is the approval state of a weekly report.
// The only transition is Pending Approval -> Approved; there is no
// rejection or resubmission state.
type ReportStatus string

const (
	ReportPendingApproval ReportStatus = "Pending Approval"
	ReportApproved        ReportStatus = "Approved"
)

// User represents the identity of the current session.
// There are exactly two fixed identities (one admin, one engineer); the
// session record is part of the persisted state blob and survives restarts.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Task represents a unit of maintenance work.
//
// Invariants:
//   - ID is globally unique across the task collection and never changes.
//   - CompletionDate is set exactly while Status is Completed, nil otherwise.
//   - Remarks is an append-only log: each entry is a "[timestamp] text" line,
//     entries are newline-separated and never edited or removed.
//
// The task collection keeps insertion order; no implicit sorting is applied
// by the store.
type Task struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Category       TaskCategory  `json:"category"`
	Priority       TaskPriority  `json:"priority"`
	Frequency      TaskFrequency `json:"frequency"`
	DueDate        time.Time     `json:"dueDate"`
	Status         TaskStatus    `json:"status"`
	Remarks        string        `json:"remarks"`
	CompletionDate *time.Time    `json:"completionDate,omitempty"`
	AssignedTo     string        `json:"assignedTo"` // engineer user ID
	ImageURL       string        `json:"imageUrl,omitempty"`
	IsPreventive   bool          `json:"isPreventive"`
}

// Report represents a weekly summary submitted by an engineer (or the admin).
// The aggregate counts are snapshots computed at submission time; deleting
// tasks afterwards does not change them.
//
// Invariant: after creation only Status ever changes, and only from
// Pending Approval to Approved.
type Report struct {
	ID             string       `json:"id"`
	WeekStarting   string       `json:"weekStarting"` // date only, e.g. "2026-08-24"
	SubmittedBy    string       `json:"submittedBy"`  // engineer user ID
	TotalAssigned  int          `json:"totalAssigned"`
	TotalCompleted int          `json:"totalCompleted"`
	PendingItems   int          `json:"pendingItems"` // TotalAssigned - TotalCompleted
	CriticalIssues []string     `json:"criticalIssues"`
	Status         ReportStatus `json:"status"`
	SubmissionDate time.Time    `json:"submissionDate"`
}

// ============================================================================
// Data Transfer Objects (DTOs) - Form Input
// ============================================================================

// LoginForm carries the passcode from the login form.
// The passcode selects one of the two fixed identities; it is a demo
// convenience, not authentication.
type LoginForm struct {
	Passcode string
}

// TaskForm carries data from the admin's task creation and edit forms.
// DueDate arrives as "2006-01-02" and is parsed before reaching the store.
type TaskForm struct {
	Title        string
	Description  string
	Category     string
	Priority     string
	Frequency    string
	DueDate      string
	AssignedTo   string
	IsPreventive bool
}

// RemarkForm carries a single remark to append to a task's remark log.
type RemarkForm struct {
	Text string
}

// ReportForm carries the free-text critical issues from the weekly report
// form. One issue per line; blank lines are dropped.
type ReportForm struct {
	CriticalIssues string
}

// ============================================================================
// View Models - Template Rendering
// ============================================================================

// TaskView is a task enriched for display on the task board.
type TaskView struct {
	Task
	Overdue  bool   // Status != Completed and DueDate in the past
	DueLabel string // formatted due date
}

// ReportView is a report enriched for the reports table.
type ReportView struct {
	Report
	SubmittedLabel string // formatted submission date
	CanApprove     bool   // true for admins while status is Pending Approval
}
