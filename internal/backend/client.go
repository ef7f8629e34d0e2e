package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/harborview-interiors/schedule-planner/internal/config"
	"github.com/harborview-interiors/schedule-planner/internal/domain"
)

// ErrNotAuthenticated means no bearer credential was present in the
// context; the request is refused before any network call.
var ErrNotAuthenticated = errors.New("not authenticated")

// StatusError is a non-2xx answer from the CRM backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend rejected request (%d)", e.Code)
}

type tokenCtxKey struct{}

// WithToken attaches the bearer credential every outbound call will
// carry.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// Client talks to the remote CRM REST API. It holds no state beyond
// configuration; the credential rides in on each call's context.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	token := TokenFrom(ctx)
	if token == "" {
		return ErrNotAuthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Backend.RequestTimeout)*time.Second)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	url := strings.TrimSuffix(c.cfg.Backend.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Code: resp.StatusCode}
		var remote struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil {
			statusErr.Message = remote.Error
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListAssignments(ctx context.Context) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	if err := c.do(ctx, http.MethodGet, "assignments", nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// assignmentEnvelope matches the CRM's mutation responses, which wrap
// the canonical record.
type assignmentEnvelope struct {
	Assignment domain.Assignment `json:"assignment"`
}

func (c *Client) CreateAssignment(ctx context.Context, draft domain.AssignmentDraft) (*domain.Assignment, error) {
	var env assignmentEnvelope
	if err := c.do(ctx, http.MethodPost, "assignments", draft, &env); err != nil {
		return nil, err
	}
	return &env.Assignment, nil
}

func (c *Client) UpdateAssignment(ctx context.Context, id string, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	var env assignmentEnvelope
	if err := c.do(ctx, http.MethodPatch, "assignments/"+id, patch, &env); err != nil {
		return nil, err
	}
	return &env.Assignment, nil
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "assignments/"+id, nil, nil)
}

func (c *Client) ListAvailableJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.do(ctx, http.MethodGet, "jobs/available", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) ListActiveCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.do(ctx, http.MethodGet, "customers/active", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := c.do(ctx, http.MethodGet, "users/team", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, http.MethodGet, "notifications/production", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "notifications/production/"+id+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "notifications/production/mark-all-read", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "notifications/production/"+id, nil, nil)
}

func (c *Client) ClearNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "notifications/production/clear-all", nil, nil)
}

func (c *Client) DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var metrics domain.DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "dashboard/metrics", nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}
