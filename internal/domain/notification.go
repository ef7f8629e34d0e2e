package domain

type Notification struct {
	ID               string `json:"id"`
	Message          string `json:"message"`
	Read             bool   `json:"read"`
	CreatedAt        string `json:"created_at"`
	CustomerID       string `json:"customer_id,omitempty"`
	JobID            string `json:"job_id,omitempty"`
	ChecklistID      string `json:"checklist_id,omitempty"`
	FormSubmissionID int64  `json:"form_submission_id,omitempty"`
	FormType         string `json:"form_type,omitempty"` // kitchen, bedroom, invoice, receipt
	MovedBy          string `json:"moved_by,omitempty"`
}

// DashboardMetrics is the overview-card snapshot refreshed alongside
// notifications.
type DashboardMetrics struct {
	ActiveCustomers int `json:"active_customers"`
	OpenJobs        int `json:"open_jobs"`
	PendingQuotes   int `json:"pending_quotes"`
	FormsAwaiting   int `json:"forms_awaiting_approval"`
	UnreadMessages  int `json:"unread_messages"`
}
