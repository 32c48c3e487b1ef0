// This file defines the fixed seed state used on first run and whenever the
// persisted blob cannot be loaded.
package store

import (
	"time"

	"github.com/balatechn/tech-manager/internal/models"
)

// SeedState returns the initial application state: four example maintenance
// tasks assigned to the engineer identity, no reports, no session.
func SeedState() *State {
	now := time.Now().UTC()
	completed := now

	return &State{
		CurrentUser: nil,
		Tasks: []models.Task{
			{
				ID:           "1",
				Title:        "Check Firewall Logs",
				Description:  "Review weekly firewall logs for any anomalies.",
				Category:     models.CategorySecurity,
				Priority:     models.PriorityHigh,
				Frequency:    models.FrequencyWeekly,
				DueDate:      now,
				Status:       models.StatusPending,
				AssignedTo:   "eng-1",
				IsPreventive: true,
			},
			{
				ID:           "2",
				Title:        "Verify NAS Backup",
				Description:  "Ensure all NAS backups are completing successfully.",
				Category:     models.CategoryBackup,
				Priority:     models.PriorityHigh,
				Frequency:    models.FrequencyDaily,
				DueDate:      now,
				Status:       models.StatusInProgress,
				Remarks:      "Checking integrity now.",
				AssignedTo:   "eng-1",
				IsPreventive: true,
			},
			{
				ID:           "3",
				Title:        "Update Antivirus on Servers",
				Description:  "Deploy latest definitions to all VMs.",
				Category:     models.CategoryServer,
				Priority:     models.PriorityMedium,
				Frequency:    models.FrequencyWeekly,
				DueDate:      now,
				Status:       models.StatusPending,
				AssignedTo:   "eng-1",
				IsPreventive: true,
			},
			{
				ID:             "4",
				Title:          "Fix CCTV port 4",
				Description:    "Port 4 on NVR is not recording correctly.",
				Category:       models.CategoryCCTV,
				Priority:       models.PriorityLow,
				Frequency:      models.FrequencyOneTime,
				DueDate:        now,
				Status:         models.StatusCompleted,
				Remarks:        "Replaced cable.",
				CompletionDate: &completed,
				AssignedTo:     "eng-1",
				IsPreventive:   false,
			},
		},
		Reports: []models.Report{},
	}
}
