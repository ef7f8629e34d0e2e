package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/harborview-interiors/schedule-planner/internal/backend"
)

// streamClient serializes writes to one websocket connection. The
// initial snapshot and the poller broadcast run on different
// goroutines, and gorilla/websocket forbids concurrent writers.
type streamClient struct {
	conn *websocket.Conn

	mu sync.Mutex
}

func (c *streamClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(v)
}

// RefreshNotifications is the poller hook: it pulls the latest
// notification list with the service credential, caches it, and
// pushes it to every connected stream.
func (h *Handler) RefreshNotifications(ctx context.Context) {
	ctx = backend.WithToken(ctx, h.config.Backend.ServiceToken)

	notifications, err := h.backend.ListNotifications(ctx)
	if err != nil {
		slog.Warn("notification refresh failed", "error", err)
		return
	}

	h.snapshotMu.Lock()
	h.notifications = notifications
	h.snapshotMu.Unlock()

	h.broadcastNotifications()
}

// RefreshMetrics is the dashboard poller hook.
func (h *Handler) RefreshMetrics(ctx context.Context) {
	ctx = backend.WithToken(ctx, h.config.Backend.ServiceToken)

	metrics, err := h.backend.DashboardMetrics(ctx)
	if err != nil {
		slog.Warn("dashboard metrics refresh failed", "error", err)
		return
	}

	h.snapshotMu.Lock()
	h.metrics = metrics
	h.snapshotMu.Unlock()
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	h.snapshotMu.RLock()
	notifications := h.notifications
	h.snapshotMu.RUnlock()

	h.successResponse(w, r, "notifications", notifications)
}

func (h *Handler) GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	h.snapshotMu.RLock()
	metrics := h.metrics
	h.snapshotMu.RUnlock()

	h.successResponse(w, r, "dashboard metrics", metrics)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.MarkNotificationRead(r.Context(), id); err != nil {
		h.mutationError(w, r, err)
		return
	}
	h.successResponse(w, r, "notification marked read", nil)
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.MarkAllNotificationsRead(r.Context()); err != nil {
		h.mutationError(w, r, err)
		return
	}
	h.successResponse(w, r, "notifications marked read", nil)
}

func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeleteNotification(r.Context(), id); err != nil {
		h.mutationError(w, r, err)
		return
	}
	h.successResponse(w, r, "notification deleted", nil)
}

func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.ClearNotifications(r.Context()); err != nil {
		h.mutationError(w, r, err)
		return
	}
	h.successResponse(w, r, "notifications cleared", nil)
}

// StreamNotifications upgrades to a websocket and pushes each polled
// snapshot until the client goes away.
func (h *Handler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	client := &streamClient{conn: conn}
	h.streamMu.Lock()
	h.streams[client] = struct{}{}
	h.streamMu.Unlock()
	defer func() {
		h.streamMu.Lock()
		delete(h.streams, client)
		h.streamMu.Unlock()
	}()

	// send the current snapshot right away so the bell is never blank
	h.snapshotMu.RLock()
	current := h.notifications
	h.snapshotMu.RUnlock()
	if err := client.send(current); err != nil {
		return
	}

	// read pump: the client sends nothing meaningful, reading only
	// detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) broadcastNotifications() {
	h.snapshotMu.RLock()
	snapshot := h.notifications
	h.snapshotMu.RUnlock()

	h.streamMu.Lock()
	clients := make([]*streamClient, 0, len(h.streams))
	for client := range h.streams {
		clients = append(clients, client)
	}
	h.streamMu.Unlock()

	for _, client := range clients {
		if err := client.send(snapshot); err != nil {
			client.conn.Close()
			h.streamMu.Lock()
			delete(h.streams, client)
			h.streamMu.Unlock()
		}
	}
}
