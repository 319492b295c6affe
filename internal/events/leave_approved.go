package events

import "time"

const (
	LeaveLifecycleTopic    = "hr.leave.lifecycle.v1"
	EventTypeLeaveApproved = "leave_approved"
)

type LeaveApprovedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	ProfileID  string    `json:"profile_id"`
	CompanyID  string    `json:"company_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DaysCount  int       `json:"days_count"`
	ApprovedBy string    `json:"approved_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
