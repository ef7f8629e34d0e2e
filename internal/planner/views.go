package planner

import (
	"log/slog"

	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

// OverbookThreshold is the single-shift daily limit in hours, the same
// for every staff member.
const OverbookThreshold = 8.0

// View is a read-only projection of the assignment collection for one
// viewer: a manager sees the calendars they have toggled visible, a
// staff member sees everything for the day except declined items.
type View struct {
	assignments []domain.Assignment
	viewer      domain.Viewer
	visible     map[string]struct{}

	byDate map[string][]domain.Assignment
}

// View snapshots the current collection for the given viewer. The
// visible set only matters for managers.
func (p *Planner) View(viewer domain.Viewer, visibleCalendars []string) *View {
	visible := make(map[string]struct{}, len(visibleCalendars))
	for _, name := range visibleCalendars {
		visible[name] = struct{}{}
	}
	return &View{
		assignments: p.Assignments(),
		viewer:      viewer,
		visible:     visible,
	}
}

// ByDate buckets assignments by date key. An assignment without a
// date is invalid for any date-keyed view; it stays in storage but is
// logged and skipped here. The buckets are built once per View, so
// rendering a full month of day cells logs each dateless entry once.
func (v *View) ByDate() map[string][]domain.Assignment {
	if v.byDate != nil {
		return v.byDate
	}

	byDate := make(map[string][]domain.Assignment)
	for _, a := range v.assignments {
		if a.Date == "" {
			slog.Warn("assignment has no date, excluded from calendar", "id", a.ID, "title", a.Title)
			continue
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	v.byDate = byDate
	return byDate
}

// ForDate applies the viewer's visibility rule to one day's bucket.
func (v *View) ForDate(dateKey string) []domain.Assignment {
	visible := make([]domain.Assignment, 0)
	for _, a := range v.ByDate()[dateKey] {
		if v.viewer.Role == domain.RoleManager {
			if _, ok := v.visible[a.TeamMember]; ok {
				visible = append(visible, a)
			}
			continue
		}
		if a.Status == domain.StatusDeclined {
			continue
		}
		visible = append(visible, a)
	}
	return visible
}

// DailyHours sums estimated hours over the visible assignments for
// the date. String-typed hours were already coerced at decode time;
// unparsable values count as 0.
func (v *View) DailyHours(dateKey string) float64 {
	total := 0.0
	for _, a := range v.ForDate(dateKey) {
		total += float64(a.EstimatedHours)
	}
	return total
}

// Overbooked reports whether the day's visible hours exceed the
// single-shift threshold. Strictly greater: a full 8-hour day is not
// overbooked.
func (v *View) Overbooked(dateKey string) bool {
	return v.DailyHours(dateKey) > OverbookThreshold
}

// Declined lists the viewer's own declined assignments. They are
// excluded from day cells, so the UI surfaces them separately. Empty
// for managers.
func (v *View) Declined() []domain.Assignment {
	if v.viewer.Role == domain.RoleManager {
		return nil
	}
	declined := make([]domain.Assignment, 0)
	for _, a := range v.assignments {
		if a.Status != domain.StatusDeclined {
			continue
		}
		if a.TeamMember == v.viewer.Name || (a.UserID != 0 && a.UserID == v.viewer.ID) {
			declined = append(declined, a)
		}
	}
	return declined
}
