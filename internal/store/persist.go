// Package store implements the application's single source of truth: an
// in-memory state container holding the session user, the task list and the
// weekly reports, backed by best-effort whole-blob persistence.
//
// The container is the only legal way to change state. Screens and handlers
// are read-side consumers that derive view models from snapshots (see the
// stats package) and invoke the container's mutation operations.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/balatechn/tech-manager/internal/models"
)

// StorageKey is the fixed name the state blob is stored under. It matches the
// key the persisted data has carried since the first release, so existing
// data files keep loading.
const StorageKey = "tech-manager-storage"

// ErrNoState is returned by Persister.Load when no blob has been persisted
// yet (first run). Callers fall back to the seed state.
var ErrNoState = errors.New("store: no persisted state")

// State is the full application snapshot at one instant. It marshals to the
// persisted blob layout:
//
//	{ "currentUser": {...}|null, "tasks": [...], "reports": [...] }
//
// There is no versioning field; any schema evolution requires external
// migration tooling.
type State struct {
	CurrentUser *models.User    `json:"currentUser"`
	Tasks       []models.Task   `json:"tasks"`
	Reports     []models.Report `json:"reports"`
}

// Persister is the durability port of the state container. Implementations
// replace the prior blob wholesale on every Save; there is no incremental
// diffing.
//
// Persistence is best-effort: the container treats Save failures as warnings,
// never as a reason to roll back an in-memory mutation.
type Persister interface {
	// Load reads the previously persisted state blob. Returns ErrNoState if
	// nothing has been persisted yet.
	Load() (*State, error)

	// Save replaces the persisted blob with the given state.
	Save(state *State) error
}

// encodeState serializes a snapshot to the blob format.
func encodeState(state *State) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// decodeState parses a persisted blob. A blob that does not parse is treated
// as corrupt by the caller, which falls back to the seed state.
func decodeState(data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if state.Tasks == nil {
		state.Tasks = []models.Task{}
	}
	if state.Reports == nil {
		state.Reports = []models.Report{}
	}
	return &state, nil
}

// clone returns a deep copy of the state so callers can never alias the
// container's internal slices.
func (s *State) clone() *State {
	out := &State{
		CurrentUser: copyUser(s.CurrentUser),
		Tasks:       copyTasks(s.Tasks),
		Reports:     copyReports(s.Reports),
	}
	return out
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func copyTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.CompletionDate != nil {
			cd := *t.CompletionDate
			t.CompletionDate = &cd
		}
		out[i] = t
	}
	return out
}

func copyReports(reports []models.Report) []models.Report {
	out := make([]models.Report, len(reports))
	for i, r := range reports {
		if r.CriticalIssues != nil {
			issues := make([]string, len(r.CriticalIssues))
			copy(issues, r.CriticalIssues)
			r.CriticalIssues = issues
		}
		out[i] = r
	}
	return out
}
