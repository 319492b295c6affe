package profile

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "present"
	AttendanceOnLeave = "on_leave"
	AttendanceAbsent  = "absent"
)

// Profile is both the identity record and the employee directory entry.
// Rows are never hard-deleted.
type Profile struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	LoginID          string    `gorm:"column:login_id;type:varchar(20);not null;uniqueIndex:uq_profile_login_id"`
	PasswordHash     string    `gorm:"column:password_hash;type:text;not null"`
	EmployeeCode     *string   `gorm:"column:employee_code;type:varchar(50)"`
	FirstName        string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName         string    `gorm:"column:last_name;type:varchar(100);not null"`
	FullName         string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email            string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_profile_email"`
	Phone            *string   `gorm:"column:phone;type:varchar(30)"`
	Address          *string   `gorm:"column:address;type:text"`
	Role             string    `gorm:"column:role;type:varchar(20);not null;default:employee"`
	Designation      *string   `gorm:"column:designation;type:varchar(100)"`
	Department       *string   `gorm:"column:department;type:varchar(100)"`
	AttendanceStatus string    `gorm:"column:attendance_status;type:varchar(20);not null;default:absent"`
	IsFirstLogin     bool      `gorm:"column:is_first_login;not null;default:true"`
	JoiningDate      time.Time `gorm:"column:joining_date;type:date;not null"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func fullName(first, last string) string {
	if last == "" {
		return first
	}
	return first + " " + last
}
