package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-interiors/schedule-planner/internal/config"
	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

func testClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.RequestTimeout = 5
	return NewClient(cfg)
}

func authedCtx() context.Context {
	return WithToken(context.Background(), "test-token")
}

func TestDoRefusesWithoutToken(t *testing.T) {
	var dialed atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dialed.Store(true)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListAssignments(context.Background())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, dialed.Load(), "no network call without a credential")
}

func TestDoForwardsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/assignments", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Assignment{{ID: "a1", Date: "2025-03-10"}})
	}))
	defer srv.Close()

	assignments, err := testClient(srv.URL).ListAssignments(authedCtx())

	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "a1", assignments[0].ID)
}

func TestDoDecodesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "assignment already exists"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListAssignments(authedCtx())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Code)
	assert.Equal(t, "assignment already exists", statusErr.Message)
}

func TestDoStatusErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListAssignments(authedCtx())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Empty(t, statusErr.Message)
}

func TestCreateAssignmentUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var wire map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		assert.Equal(t, map[string]any{"type": "off", "date": "2025-03-10", "title": "Day Off"}, wire)

		json.NewEncoder(w).Encode(map[string]any{
			"assignment": map[string]any{"id": "srv-1", "type": "off", "date": "2025-03-10", "title": "Day Off"},
		})
	}))
	defer srv.Close()

	created, err := testClient(srv.URL).CreateAssignment(authedCtx(), domain.AssignmentDraft{
		Type:  domain.KindOff,
		Date:  "2025-03-10",
		Title: "Day Off",
	})

	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, "Day Off", created.Title)
}

func TestUpdateAssignmentSendsSparsePatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/assignments/a1", r.URL.Path)

		var wire map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		assert.Equal(t, map[string]any{"date": "2025-03-12"}, wire, "only the changed field goes over the wire")

		json.NewEncoder(w).Encode(map[string]any{
			"assignment": map[string]any{"id": "a1", "date": "2025-03-12"},
		})
	}))
	defer srv.Close()

	date := "2025-03-12"
	updated, err := testClient(srv.URL).UpdateAssignment(authedCtx(), "a1", domain.AssignmentPatch{Date: &date})

	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", updated.Date)
}

func TestDeleteAssignmentAcceptsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/assignments/a1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).DeleteAssignment(authedCtx(), "a1"))
}

func TestResourcePaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ctx := authedCtx()

	_, err := c.ListAvailableJobs(ctx)
	require.NoError(t, err)
	_, err = c.ListActiveCustomers(ctx)
	require.NoError(t, err)
	_, err = c.ListTeamMembers(ctx)
	require.NoError(t, err)
	_, err = c.ListNotifications(ctx)
	require.NoError(t, err)
	require.NoError(t, c.MarkAllNotificationsRead(ctx))
	require.NoError(t, c.ClearNotifications(ctx))

	assert.Equal(t, []string{
		"GET /jobs/available",
		"GET /customers/active",
		"GET /users/team",
		"GET /notifications/production",
		"PATCH /notifications/production/mark-all-read",
		"DELETE /notifications/production/clear-all",
	}, paths)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assignments", r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL + "/").ListAssignments(authedCtx())
	assert.NoError(t, err)
}
