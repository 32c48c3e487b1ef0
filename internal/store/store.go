// This file implements the domain state container: the seven mutation
// operations plus the read side. Every operation is atomic with respect to a
// single in-memory snapshot and is immediately followed by a best-effort
// persistence write.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/balatechn/tech-manager/internal/security"
)

// Outcome signals whether a mutation targeting an entity by id was applied.
// An explicit outcome lets callers distinguish "applied" from "no-op" and
// flash an error instead of silently dropping the request.
type Outcome int

const (
	// Applied means the target was found and the mutation took effect.
	Applied Outcome = iota
	// NotFound means no entity with the given id exists; state is unchanged.
	NotFound
)

// ErrDuplicateID is returned by AddTask when a task with the same id already
// exists. Task ids are globally unique by invariant.
var ErrDuplicateID = errors.New("store: duplicate task id")

// TaskUpdate is a partial update for a task. Nil fields are left unchanged;
// non-nil fields overwrite the existing value.
//
// CompletionDate is only consulted when Status is set to Completed; the
// container owns the status/completion-date coupling (see UpdateTask).
type TaskUpdate struct {
	Title          *string
	Description    *string
	Category       *models.TaskCategory
	Priority       *models.TaskPriority
	Frequency      *models.TaskFrequency
	DueDate        *time.Time
	Status         *models.TaskStatus
	Remarks        *string
	CompletionDate *time.Time
	AssignedTo     *string
	ImageURL       *string
	IsPreventive   *bool
}

// Store is the mutable source of truth for the session user, tasks and
// reports. It is safe for concurrent use; HTTP consumers are concurrent by
// nature even though the application assumes a single active user.
type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
	logger    *security.Logger

	// now is the clock used to stamp completion dates. Tests override it.
	now func() time.Time
}

// New creates a store backed by the given persister. It attempts to load
// previously persisted state; on the first run, or when the persisted blob is
// corrupt or unreadable, it falls back to the fixed seed state rather than
// failing startup.
func New(persister Persister, logger *security.Logger) *Store {
	s := &Store{
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}

	state, err := persister.Load()
	switch {
	case err == nil:
		s.state = *state
	case errors.Is(err, ErrNoState):
		s.state = *SeedState()
		logger.Info("no persisted state found, starting from seed data")
	default:
		s.state = *SeedState()
		logger.Warn(fmt.Sprintf("failed to load persisted state, starting from seed data: %v", err))
	}

	return s
}

// ============================================================================
// Read Side
// ============================================================================

// CurrentUser returns the session user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.state.CurrentUser)
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTasks(s.state.Tasks)
}

// Reports returns a copy of the report collection in submission order.
func (s *Store) Reports() []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyReports(s.state.Reports)
}

// Snapshot returns a deep copy of the full state. All derived view-model
// computations operate on snapshots, never on live internal state.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// ============================================================================
// Mutation Operations
// ============================================================================

// Login unconditionally sets the session user. Credential checking is the
// caller's responsibility (see the services package); the container records
// whatever identity it is handed.
func (s *Store) Login(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = &user
	s.persist()
}

// Logout clears the session user.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = nil
	s.persist()
}

// AddTask appends a fully-formed task to the end of the collection. The
// caller supplies the id; ids must be unique across the collection and
// AddTask rejects duplicates. A task with no status starts Pending.
func (s *Store) AddTask(task models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == task.ID {
			return ErrDuplicateID
		}
	}

	if task.Status == "" {
		task.Status = models.StatusPending
	}

	s.state.Tasks = append(s.state.Tasks, task)
	s.persist()
	return nil
}

// UpdateTask merges a partial update over the task with the given id,
// preserving collection order. Fields absent from the update keep their
// prior values.
//
// The container owns the completion-date invariant: setting Status to
// Completed stamps CompletionDate (the update may supply an explicit one),
// setting any other status clears it.
func (s *Store) UpdateTask(id string, update TaskUpdate) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}

		t := &s.state.Tasks[i]
		if update.Title != nil {
			t.Title = *update.Title
		}
		if update.Description != nil {
			t.Description = *update.Description
		}
		if update.Category != nil {
			t.Category = *update.Category
		}
		if update.Priority != nil {
			t.Priority = *update.Priority
		}
		if update.Frequency != nil {
			t.Frequency = *update.Frequency
		}
		if update.DueDate != nil {
			t.DueDate = *update.DueDate
		}
		if update.Remarks != nil {
			t.Remarks = *update.Remarks
		}
		if update.AssignedTo != nil {
			t.AssignedTo = *update.AssignedTo
		}
		if update.ImageURL != nil {
			t.ImageURL = *update.ImageURL
		}
		if update.IsPreventive != nil {
			t.IsPreventive = *update.IsPreventive
		}
		if update.Status != nil {
			t.Status = *update.Status
			if t.Status == models.StatusCompleted {
				if update.CompletionDate != nil {
					cd := *update.CompletionDate
					t.CompletionDate = &cd
				} else {
					cd := s.now()
					t.CompletionDate = &cd
				}
			} else {
				t.CompletionDate = nil
			}
		}

		s.persist()
		return Applied
	}

	return NotFound
}

// DeleteTask removes the task with the given id. There is no soft delete and
// no cascade; reports keep their snapshot counts regardless.
func (s *Store) DeleteTask(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
			s.persist()
			return Applied
		}
	}

	return NotFound
}

// SubmitReport appends a fully-formed report. The caller computes the
// aggregate counts before calling; the container does not recompute them.
// A report with no status starts Pending Approval.
func (s *Store) SubmitReport(report models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.Status == "" {
		report.Status = models.ReportPendingApproval
	}

	s.state.Reports = append(s.state.Reports, report)
	s.persist()
}

// ApproveReport sets the report's status to Approved. Approving an already
// approved report is an idempotent success; only a missing id yields
// NotFound. Status is the only field that ever changes after submission.
func (s *Store) ApproveReport(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reports {
		if s.state.Reports[i].ID == id {
			if s.state.Reports[i].Status != models.ReportApproved {
				s.state.Reports[i].Status = models.ReportApproved
				s.persist()
			}
			return Applied
		}
	}

	return NotFound
}

// persist writes the current state through the persistence port. Failures are
// logged and swallowed: the in-memory state already reflects the mutation and
// consumers must keep seeing it, at the cost of durability for this change.
// Callers must hold the write lock.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}

	if err := s.persister.Save(s.state.clone()); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to persist state: %v", err))
	}
}
