package handler

import "net/http"

func (h *Handler) GetCustomAssignees(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.Assignees(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "custom assignees", entries)
}

func (h *Handler) AddCustomAssignee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	added, err := h.lists.AddAssignee(r.Context(), req.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !added {
		h.successResponse(w, r, "assignee already known", nil)
		return
	}
	h.successResponse(w, r, "assignee added", req.Name)
}

func (h *Handler) GetCustomTasks(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.Tasks(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.successResponse(w, r, "custom tasks", entries)
}

func (h *Handler) AddCustomTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	added, err := h.lists.AddTask(r.Context(), req.Name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !added {
		h.successResponse(w, r, "task already known", nil)
		return
	}
	h.successResponse(w, r, "task added", req.Name)
}
