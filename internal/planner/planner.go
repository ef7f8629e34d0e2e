// Package planner owns the session-side model of the assignment
// calendar: an in-memory cache reconciled against the remote CRM, the
// derived day views, and the drag-reschedule state machine. The CRM
// stays the source of truth; every successful write replaces the
// cached record with the server's canonical version.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

// Backend is the slice of the CRM client the planner needs.
type Backend interface {
	ListAssignments(ctx context.Context) ([]domain.Assignment, error)
	ListAvailableJobs(ctx context.Context) ([]domain.Job, error)
	ListActiveCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateAssignment(ctx context.Context, draft domain.AssignmentDraft) (*domain.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, patch domain.AssignmentPatch) (*domain.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

type Planner struct {
	backend Backend

	mu          sync.Mutex
	assignments []domain.Assignment
	jobs        []domain.Job
	customers   []domain.Customer

	saving atomic.Bool
}

func New(backend Backend) *Planner {
	return &Planner{backend: backend}
}

// Load fetches assignments, available jobs and active customers
// concurrently. Each resource degrades to empty on its own failure so
// the calendar still renders with whatever succeeded.
func (p *Planner) Load(ctx context.Context) {
	var (
		wg          sync.WaitGroup
		assignments []domain.Assignment
		jobs        []domain.Job
		customers   []domain.Customer
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if assignments, err = p.backend.ListAssignments(ctx); err != nil {
			slog.Warn("loading assignments failed, continuing with none", "error", err)
			assignments = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if jobs, err = p.backend.ListAvailableJobs(ctx); err != nil {
			slog.Warn("loading available jobs failed, continuing with none", "error", err)
			jobs = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if customers, err = p.backend.ListActiveCustomers(ctx); err != nil {
			slog.Warn("loading active customers failed, continuing with none", "error", err)
			customers = nil
		}
	}()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.assignments = assignments
	p.jobs = jobs
	p.customers = customers
}

// beginSave is the repository-wide in-flight guard. The UI disables
// its controls while a save runs, so overlap here means a duplicate
// submission and is refused rather than queued.
func (p *Planner) beginSave() error {
	if !p.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	return nil
}

func (p *Planner) endSave() {
	p.saving.Store(false)
}

// Create validates and completes the draft, submits it, and appends
// the server's canonical record on success. No local mutation happens
// on failure.
func (p *Planner) Create(ctx context.Context, actor domain.Viewer, draft domain.AssignmentDraft) (*domain.Assignment, error) {
	if err := p.beginSave(); err != nil {
		return nil, err
	}
	defer p.endSave()

	if draft.Type == "" {
		return nil, fmt.Errorf("%w: type is required", ErrValidation)
	}
	if draft.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	p.mu.Lock()
	jobs, customers := p.jobs, p.customers
	p.mu.Unlock()

	if draft.Title == "" {
		draft.Title = draft.DefaultTitle(jobs, customers)
	}
	if draft.EstimatedHours == nil {
		hours := float64(domain.FullDayHours)
		if derived, ok := domain.DeriveHours(draft.StartTime, draft.EndTime); ok {
			hours = derived
		}
		draft.EstimatedHours = &hours
	}
	draft.Status = domain.StatusScheduled
	if actor.Role == domain.RoleManager || p.isSelfAssignment(actor, draft) {
		draft.Status = domain.StatusAccepted
	}

	created, err := p.backend.CreateAssignment(ctx, draft)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.assignments = append(p.assignments, *created)
	p.mu.Unlock()
	return created, nil
}

func (p *Planner) isSelfAssignment(actor domain.Viewer, draft domain.AssignmentDraft) bool {
	if draft.UserID != nil && *draft.UserID == actor.ID {
		return true
	}
	return draft.TeamMember != "" && draft.TeamMember == actor.Name
}

// Update sends the patch and replaces the cached record with the
// canonical version the server returns. Not a local merge.
func (p *Planner) Update(ctx context.Context, id string, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	if err := p.beginSave(); err != nil {
		return nil, err
	}
	defer p.endSave()

	updated, err := p.backend.UpdateAssignment(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.replaceLocked(*updated)
	p.mu.Unlock()
	return updated, nil
}

// Delete removes the assignment remotely, then locally. Deleting an
// id the cache no longer holds leaves the collection unchanged.
func (p *Planner) Delete(ctx context.Context, id string) error {
	if err := p.beginSave(); err != nil {
		return err
	}
	defer p.endSave()

	if err := p.backend.DeleteAssignment(ctx, id); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.assignments[:0]
	for _, a := range p.assignments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	p.assignments = kept
	return nil
}

// MoveAssignment is the drag commit: a date-only patch applied
// optimistically, then confirmed against the CRM. On failure the
// inverse patch snaps the card back to its original date.
func (p *Planner) MoveAssignment(ctx context.Context, id, newDate string) (*domain.Assignment, error) {
	if err := p.beginSave(); err != nil {
		return nil, err
	}
	defer p.endSave()

	p.mu.Lock()
	var cmd command
	found := false
	for _, a := range p.assignments {
		if a.ID == id {
			cmd = moveCommand(a, newDate)
			found = true
			break
		}
	}
	if !found {
		p.mu.Unlock()
		return nil, ErrNotFound
	}
	p.applyLocked(cmd.id, cmd.patch)
	p.mu.Unlock()

	updated, err := p.backend.UpdateAssignment(ctx, id, cmd.patch)
	if err != nil {
		p.mu.Lock()
		p.applyLocked(cmd.id, cmd.inverse)
		p.mu.Unlock()
		return nil, err
	}

	p.mu.Lock()
	p.replaceLocked(*updated)
	p.mu.Unlock()
	return updated, nil
}

// replaceLocked swaps in the canonical record by id. Caller holds
// p.mu.
func (p *Planner) replaceLocked(canonical domain.Assignment) {
	for i := range p.assignments {
		if p.assignments[i].ID == canonical.ID {
			p.assignments[i] = canonical
			return
		}
	}
}

// Assignments returns a copy of the cached collection.
func (p *Planner) Assignments() []domain.Assignment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Assignment, len(p.assignments))
	copy(out, p.assignments)
	return out
}

func (p *Planner) Jobs() []domain.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Job, len(p.jobs))
	copy(out, p.jobs)
	return out
}

func (p *Planner) Customers() []domain.Customer {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Customer, len(p.customers))
	copy(out, p.customers)
	return out
}
