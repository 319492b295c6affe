package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePaid   = "paid_leave"
	TypeSick   = "sick_leave"
	TypeUnpaid = "unpaid_leave"
	TypeCasual = "casual_leave"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// MaxLeaveDays bounds a single request, and with it the attendance rows
// written on approval.
const MaxLeaveDays = 366

type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_profile_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_profile_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_profile_dates"`
	DaysCount int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;index:idx_leave_requests_company_status"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type LeaveAllocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_allocation"`
	LeaveType string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_allocation"`
	Year      int       `gorm:"not null;uniqueIndex:uq_leave_allocation"`
	TotalDays int       `gorm:"not null"`
	UsedDays  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveAllocation) TableName() string {
	return "leave_allocations"
}

func (a LeaveAllocation) Remaining() int {
	return a.TotalDays - a.UsedDays
}

// Decision is the status change written when a pending request is closed.
type Decision struct {
	Status          string
	DecidedBy       *uuid.UUID
	DecidedAt       *time.Time
	RejectionReason *string
}

var defaultTotalDays = map[string]int{
	TypePaid:   20,
	TypeSick:   12,
	TypeCasual: 10,
}

// DefaultTotalDays is the yearly entitlement used when an allocation row has
// to be created on the fly.
func DefaultTotalDays(leaveType string) int {
	return defaultTotalDays[leaveType]
}

// AllocatedTypes are the leave types that draw down an allocation.
var AllocatedTypes = []string{TypePaid, TypeSick, TypeCasual}

func IsKnownType(leaveType string) bool {
	switch leaveType {
	case TypePaid, TypeSick, TypeUnpaid, TypeCasual:
		return true
	default:
		return false
	}
}

func UsesAllocation(leaveType string) bool {
	return IsKnownType(leaveType) && leaveType != TypeUnpaid
}

// CanTransition reports whether a request may move from one status to another.
// Only pending requests move; approved, rejected and cancelled are final.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
