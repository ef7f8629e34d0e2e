package planner

import "github.com/harborview-interiors/schedule-planner/internal/domain"

// command is one optimistic local mutation paired with the inverse
// patch that undoes it. Rollback is replaying the inverse through the
// same reducer instead of hand-written state surgery at call sites.
type command struct {
	id      string
	patch   domain.AssignmentPatch
	inverse domain.AssignmentPatch
}

// moveCommand builds the date-only patch a drag produces, capturing
// the original date for rollback.
func moveCommand(a domain.Assignment, newDate string) command {
	oldDate := a.Date
	return command{
		id:      a.ID,
		patch:   domain.AssignmentPatch{Date: &newDate},
		inverse: domain.AssignmentPatch{Date: &oldDate},
	}
}

// applyLocked patches the cached record in place. Caller holds p.mu.
func (p *Planner) applyLocked(id string, patch domain.AssignmentPatch) bool {
	for i := range p.assignments {
		if p.assignments[i].ID == id {
			patch.Apply(&p.assignments[i])
			return true
		}
	}
	return false
}
