package domain

// Job is a read-only lookup record from the CRM, used for pickers and
// default titles. Never mutated here.
type Job struct {
	ID                  string `json:"id"`
	JobReference        string `json:"job_reference"`
	CustomerName        string `json:"customer_name"`
	CustomerID          string `json:"customer_id"`
	JobType             string `json:"job_type,omitempty"`
	Stage               string `json:"stage"`
	InstallationAddress string `json:"installation_address,omitempty"`
	Priority            string `json:"priority,omitempty"`
}

// Customer is a read-only lookup record from the CRM.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Stage   string `json:"stage"`
}

// TeamMember is owned by the user-management service; here it only
// populates the manager's calendar visibility toggles.
type TeamMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	TeamID int64  `json:"team_id,omitempty"`
}

type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Viewer identifies who is looking at the calendar.
type Viewer struct {
	ID   int64
	Name string
	Role Role
}
