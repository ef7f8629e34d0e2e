package planner

import (
	"context"
	"sync"

	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

// Dragger is the drag-reschedule state machine: Idle until Start,
// Dragging until Drop or Cancel. State is keyed by viewer id, so each
// viewer has at most one drag in flight and one viewer's drag can
// never be dropped or cancelled by another. Drop commits a date-only
// move; the dragged reference is cleared whatever the outcome so a
// failed commit can never leave a stuck drag.
type Dragger struct {
	planner *Planner

	mu      sync.Mutex
	dragged map[int64]*domain.Assignment
}

func NewDragger(p *Planner) *Dragger {
	return &Dragger{
		planner: p,
		dragged: make(map[int64]*domain.Assignment),
	}
}

// Start remembers the assignment under drag for this viewer. Starting
// over an existing drag replaces it.
func (d *Dragger) Start(viewerID int64, a domain.Assignment) {
	copied := a
	d.mu.Lock()
	d.dragged[viewerID] = &copied
	d.mu.Unlock()
}

// Dragging reports the assignment this viewer is currently dragging,
// if any.
func (d *Dragger) Dragging(viewerID int64) (domain.Assignment, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := d.dragged[viewerID]
	if a == nil {
		return domain.Assignment{}, false
	}
	return *a, true
}

func (d *Dragger) Cancel(viewerID int64) {
	d.mu.Lock()
	delete(d.dragged, viewerID)
	d.mu.Unlock()
}

// Drop commits this viewer's drag onto the target day cell. A drop
// with nothing dragged is a no-op. Only the date changes; times,
// assignee and everything else ride along untouched.
func (d *Dragger) Drop(ctx context.Context, viewerID int64, dateKey string) (*domain.Assignment, error) {
	d.mu.Lock()
	a := d.dragged[viewerID]
	delete(d.dragged, viewerID)
	d.mu.Unlock()

	if a == nil {
		return nil, nil
	}
	return d.planner.MoveAssignment(ctx, a.ID, dateKey)
}
