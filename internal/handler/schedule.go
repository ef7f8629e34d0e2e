package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harborview-interiors/schedule-planner/internal/backend"
	"github.com/harborview-interiors/schedule-planner/internal/calendar"
	"github.com/harborview-interiors/schedule-planner/internal/domain"
	"github.com/harborview-interiors/schedule-planner/internal/planner"
)

// mutationError maps planner and backend failures onto the response
// envelope. Write failures are always surfaced, never swallowed.
func (h *Handler) mutationError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, planner.ErrValidation),
		errors.Is(err, planner.ErrSaveInFlight),
		errors.Is(err, planner.ErrNotFound):
		h.errorResponse(w, r, err.Error())
	case errors.Is(err, backend.ErrNotAuthenticated):
		h.errorResponse(w, r, "not authenticated")
	case errors.As(err, &statusErr):
		h.errorResponse(w, r, statusErr.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

// RefreshSchedule reloads assignments, jobs and customers from the
// CRM and returns the whole planning state, team list included.
func (h *Handler) RefreshSchedule(w http.ResponseWriter, r *http.Request) {
	h.planner.Load(r.Context())

	// team members come from the user service and are not part of the
	// degradable three-way load
	team, err := h.backend.ListTeamMembers(r.Context())
	if err != nil {
		team = nil
	}

	h.successResponse(w, r, "schedule refreshed", map[string]any{
		"assignments": h.planner.Assignments(),
		"jobs":        h.planner.Jobs(),
		"customers":   h.planner.Customers(),
		"team":        team,
	})
}

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "assignments", h.planner.Assignments())
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type           string   `json:"type" validate:"required,oneof=job off delivery note"`
		Date           string   `json:"date" validate:"required"`
		Title          string   `json:"title"`
		TeamMember     string   `json:"team_member"`
		UserID         *int64   `json:"user_id"`
		JobID          string   `json:"job_id"`
		CustomerID     string   `json:"customer_id"`
		StartTime      string   `json:"start_time"`
		EndTime        string   `json:"end_time"`
		EstimatedHours *float64 `json:"estimated_hours"`
		Notes          string   `json:"notes"`
		Priority       string   `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	draft := domain.AssignmentDraft{
		Type:           domain.Kind(req.Type),
		Date:           req.Date,
		Title:          req.Title,
		TeamMember:     req.TeamMember,
		UserID:         req.UserID,
		JobID:          req.JobID,
		CustomerID:     req.CustomerID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		EstimatedHours: req.EstimatedHours,
		Notes:          req.Notes,
		Priority:       domain.Priority(req.Priority),
	}

	created, err := h.planner.Create(r.Context(), h.viewer(r), draft)
	if err != nil {
		h.mutationError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment created", created)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.AssignmentPatch
	if err := h.readJSON(r, &patch); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.planner.Update(r.Context(), id, patch)
	if err != nil {
		h.mutationError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment updated", updated)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.planner.Delete(r.Context(), id); err != nil {
		h.mutationError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment deleted", nil)
}

func (h *Handler) MoveAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Date string `json:"date" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	moved, err := h.planner.MoveAssignment(r.Context(), id, req.Date)
	if err != nil {
		h.mutationError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment moved", moved)
}

// GetGrid returns the month or week date grid anchored at the given
// date key, defaulting to today.
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := calendar.ParseDateKey(dateParam)
		if err != nil {
			h.errorResponse(w, r, "invalid date")
			return
		}
		ref = parsed
	}

	var days []time.Time
	switch r.URL.Query().Get("view") {
	case "week":
		days = calendar.WorkWeek(ref)
	case "", "month":
		days = calendar.MonthGrid(ref)
	default:
		h.errorResponse(w, r, "invalid view")
		return
	}

	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, calendar.DateKey(day))
	}

	h.successResponse(w, r, "grid", keys)
}

// GetDay returns the viewer's visible assignments for one day cell,
// with the workload summary used for the overbooking indicator.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	if _, err := calendar.ParseDateKey(dateKey); err != nil {
		h.errorResponse(w, r, "invalid date")
		return
	}

	var visible []string
	if calendars := r.URL.Query().Get("calendars"); calendars != "" {
		visible = strings.Split(calendars, ",")
	}

	view := h.planner.View(h.viewer(r), visible)
	h.successResponse(w, r, "day", map[string]any{
		"assignments": view.ForDate(dateKey),
		"daily_hours": view.DailyHours(dateKey),
		"overbooked":  view.Overbooked(dateKey),
	})
}

func (h *Handler) GetDeclined(w http.ResponseWriter, r *http.Request) {
	view := h.planner.View(h.viewer(r), nil)
	h.successResponse(w, r, "declined assignments", view.Declined())
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.backend.ListTeamMembers(r.Context())
	if err != nil {
		h.mutationError(w, r, err)
		return
	}
	h.successResponse(w, r, "team", team)
}

func (h *Handler) DragStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	for _, a := range h.planner.Assignments() {
		if a.ID == req.ID {
			h.dragger.Start(h.viewer(r).ID, a)
			h.successResponse(w, r, "drag started", a)
			return
		}
	}
	h.errorResponse(w, r, planner.ErrNotFound.Error())
}

func (h *Handler) DragDrop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	moved, err := h.dragger.Drop(r.Context(), h.viewer(r).ID, req.Date)
	if err != nil {
		h.mutationError(w, r, err)
		return
	}
	if moved == nil {
		h.successResponse(w, r, "nothing dragged", nil)
		return
	}

	h.successResponse(w, r, "assignment moved", moved)
}

func (h *Handler) DragCancel(w http.ResponseWriter, r *http.Request) {
	h.dragger.Cancel(h.viewer(r).ID)
	h.successResponse(w, r, "drag cancelled", nil)
}
