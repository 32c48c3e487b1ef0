// Package security provides input validation functionality.
// Validates task and report form input before it reaches the state store.
package security

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationService provides centralized input validation functions.
// All validation methods return descriptive errors that are safe to show to users.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// validTaskCategories mirrors the fixed category enumeration.
// Kept as a set for O(1) membership checks on form input.
var validTaskCategories = map[string]bool{
	"Network": true, "Server": true, "Backup": true, "Security": true,
	"CCTV": true, "Email": true, "Hardware": true,
}

var validTaskPriorities = map[string]bool{
	"High": true, "Medium": true, "Low": true,
}

var validTaskFrequencies = map[string]bool{
	"Daily": true, "Weekly": true, "Monthly": true, "One-time": true,
}

var validTaskStatuses = map[string]bool{
	"Pending": true, "In Progress": true, "Completed": true,
}

// ValidateTaskTitle validates task title presence and length.
func (v *ValidationService) ValidateTaskTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("task title is required")
	}

	if utf8.RuneCountInString(title) > v.config.MaxTitleLength {
		return fmt.Errorf("task title must be %d characters or less", v.config.MaxTitleLength)
	}

	return nil
}

// ValidateTaskDescription validates task description length.
// An empty description is allowed.
func (v *ValidationService) ValidateTaskDescription(description string) error {
	if utf8.RuneCountInString(description) > v.config.MaxDescriptionLength {
		return fmt.Errorf("task description must be %d characters or less", v.config.MaxDescriptionLength)
	}

	return nil
}

// ValidateCategory validates that the value is one of the seven fixed categories.
func (v *ValidationService) ValidateCategory(category string) error {
	if !validTaskCategories[category] {
		return fmt.Errorf("invalid category")
	}
	return nil
}

// ValidatePriority validates that the value is High, Medium or Low.
func (v *ValidationService) ValidatePriority(priority string) error {
	if !validTaskPriorities[priority] {
		return fmt.Errorf("invalid priority")
	}
	return nil
}

// ValidateFrequency validates that the value is one of the recurrence hints.
func (v *ValidationService) ValidateFrequency(frequency string) error {
	if !validTaskFrequencies[frequency] {
		return fmt.Errorf("invalid frequency")
	}
	return nil
}

// ValidateStatus validates a task workflow status value.
func (v *ValidationService) ValidateStatus(status string) error {
	if !validTaskStatuses[status] {
		return fmt.Errorf("invalid status")
	}
	return nil
}

// ValidateDate validates a form date in "2006-01-02" format.
func (v *ValidationService) ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is required")
	}

	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format (expected: YYYY-MM-DD)")
	}

	return nil
}

// ValidateRemark validates a remark before it is appended to a task's log.
func (v *ValidationService) ValidateRemark(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("remark text is required")
	}

	if utf8.RuneCountInString(text) > v.config.MaxRemarkLength {
		return fmt.Errorf("remark must be %d characters or less", v.config.MaxRemarkLength)
	}

	return nil
}

// ValidateCriticalIssues validates the critical-issues text of a weekly report.
// Empty input is allowed; a report may have no critical issues.
func (v *ValidationService) ValidateCriticalIssues(text string) error {
	if len(text) > v.config.MaxIssuesSize {
		return fmt.Errorf("critical issues must be %d bytes or less", v.config.MaxIssuesSize)
	}

	return nil
}

// SanitizeString trims whitespace and strips control characters from input.
func (v *ValidationService) SanitizeString(input string) string {
	input = strings.TrimSpace(input)

	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
}

// ValidateRequired checks that a required field is not empty.
func (v *ValidationService) ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
