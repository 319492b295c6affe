package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusOnLeave = "on_leave"
	StatusAbsent  = "absent"
)

type Record struct {
	ID             uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID   `gorm:"column:company_id;type:uuid;not null;index"`
	ProfileID      uuid.UUID   `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:uq_attendance_profile_date"`
	AttendanceDate time.Time   `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_profile_date"`
	CheckInTime    *time.Time  `gorm:"column:check_in_time;type:timestamptz"`
	CheckOutTime   *time.Time  `gorm:"column:check_out_time;type:timestamptz"`
	Status         string      `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt      time.Time   `gorm:"column:created_at"`
	UpdatedAt      time.Time   `gorm:"column:updated_at"`
	Profile        *ProfileRef `gorm:"foreignKey:ProfileID;references:ID"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// ProfileRef is the slice of a profile shown next to company-wide attendance.
type ProfileRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	EmployeeCode *string   `gorm:"column:employee_code"`
	Department   *string   `gorm:"column:department"`
}

func (ProfileRef) TableName() string {
	return "profiles"
}

// OnLeaveDays builds the back-fill rows written when a leave is approved.
func OnLeaveDays(companyID, profileID uuid.UUID, days []time.Time, now time.Time) []Record {
	rows := make([]Record, len(days))
	for i, d := range days {
		rows[i] = Record{
			ID:             uuid.New(),
			CompanyID:      companyID,
			ProfileID:      profileID,
			AttendanceDate: d,
			Status:         StatusOnLeave,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}
	return rows
}
