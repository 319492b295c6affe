package events

import "time"

const (
	ProfileLifecycleTopic   = "hr.profile.lifecycle.v1"
	EventTypeProfileCreated = "profile_created"
)

type ProfileCreatedEvent struct {
	EventType   string    `json:"event_type"`
	ProfileID   string    `json:"profile_id"`
	CompanyID   string    `json:"company_id"`
	LoginID     string    `json:"login_id"`
	JoiningYear int       `json:"joining_year"`
	OccurredAt  time.Time `json:"occurred_at"`
}
