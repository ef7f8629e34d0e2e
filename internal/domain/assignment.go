package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindJob      Kind = "job"
	KindOff      Kind = "off"
	KindDelivery Kind = "delivery"
	KindNote     Kind = "note"
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusAccepted  Status = "Accepted"
	StatusDeclined  Status = "Declined"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// FullDayHours is what an assignment counts for when no start/end
// time pair is given.
const FullDayHours = 8

// Hours tolerates both numeric and string encodings on the wire;
// an unparsable value decodes to 0.
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*h = Hours(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*h = 0
		return nil
	}
	*h = Hours(n)
	return nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(h))
}

// Assignment is one calendar entry: a job visit, a day off, a delivery
// batch or a note, owned by one staff member on one date.
type Assignment struct {
	ID             string   `json:"id"`
	Type           Kind     `json:"type"`
	Title          string   `json:"title"`
	Date           string   `json:"date"` // YYYY-MM-DD; empty entries never reach date-keyed views
	TeamMember     string   `json:"team_member,omitempty"`
	UserID         int64    `json:"user_id,omitempty"`
	JobID          string   `json:"job_id,omitempty"`
	CustomerID     string   `json:"customer_id,omitempty"`
	StartTime      string   `json:"start_time,omitempty"` // HH:MM
	EndTime        string   `json:"end_time,omitempty"`
	EstimatedHours Hours    `json:"estimated_hours,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Priority       Priority `json:"priority,omitempty"`
	Status         Status   `json:"status,omitempty"`
	JobReference   string   `json:"job_reference,omitempty"`
	CustomerName   string   `json:"customer_name,omitempty"`
}

// AssignmentDraft is the create payload. The backend distinguishes an
// absent key from an explicit null, so every optional field is a
// pointer or omitempty-string and unset fields never hit the wire.
type AssignmentDraft struct {
	Type           Kind     `json:"type,omitempty"`
	Title          string   `json:"title,omitempty"`
	Date           string   `json:"date,omitempty"`
	TeamMember     string   `json:"team_member,omitempty"`
	UserID         *int64   `json:"user_id,omitempty"`
	JobID          string   `json:"job_id,omitempty"`
	CustomerID     string   `json:"customer_id,omitempty"`
	StartTime      string   `json:"start_time,omitempty"`
	EndTime        string   `json:"end_time,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Priority       Priority `json:"priority,omitempty"`
	Status         Status   `json:"status,omitempty"`
}

// AssignmentPatch is a partial update; nil fields are left untouched
// and omitted from the wire body.
type AssignmentPatch struct {
	Type           *Kind     `json:"type,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Date           *string   `json:"date,omitempty"`
	TeamMember     *string   `json:"team_member,omitempty"`
	UserID         *int64    `json:"user_id,omitempty"`
	JobID          *string   `json:"job_id,omitempty"`
	CustomerID     *string   `json:"customer_id,omitempty"`
	StartTime      *string   `json:"start_time,omitempty"`
	EndTime        *string   `json:"end_time,omitempty"`
	EstimatedHours *float64  `json:"estimated_hours,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Priority       *Priority `json:"priority,omitempty"`
	Status         *Status   `json:"status,omitempty"`
}

// Apply copies the patch's set fields onto the assignment.
func (p AssignmentPatch) Apply(a *Assignment) {
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.TeamMember != nil {
		a.TeamMember = *p.TeamMember
	}
	if p.UserID != nil {
		a.UserID = *p.UserID
	}
	if p.JobID != nil {
		a.JobID = *p.JobID
	}
	if p.CustomerID != nil {
		a.CustomerID = *p.CustomerID
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		a.EndTime = *p.EndTime
	}
	if p.EstimatedHours != nil {
		a.EstimatedHours = Hours(*p.EstimatedHours)
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

// DefaultTitle derives the title shown on a card when the dialog left
// it blank. Job assignments name the job and customer, the rest get a
// fixed label per kind.
func (d AssignmentDraft) DefaultTitle(jobs []Job, customers []Customer) string {
	switch d.Type {
	case KindJob:
		if d.JobID != "" {
			for _, j := range jobs {
				if j.ID == d.JobID {
					return j.JobReference + " - " + j.CustomerName
				}
			}
			return "Job Assignment"
		}
		if d.CustomerID != "" {
			for _, c := range customers {
				if c.ID == d.CustomerID {
					return "Job - " + c.Name
				}
			}
		}
		return "Job Assignment"
	case KindOff:
		return "Day Off"
	case KindDelivery:
		return "Deliveries"
	case KindNote:
		if d.Notes != "" {
			return d.Notes
		}
		return "Note"
	default:
		return "Assignment"
	}
}

// DeriveHours computes the hour span between two HH:MM wall-clock
// values. Reports false when either is missing, malformed or the span
// is not positive.
func DeriveHours(start, end string) (float64, bool) {
	if start == "" || end == "" {
		return 0, false
	}
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, false
	}
	span := e.Sub(s).Hours()
	if span <= 0 {
		return 0, false
	}
	return span, true
}
