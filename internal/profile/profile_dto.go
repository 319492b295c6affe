package profile

type CreateProfileRequest struct {
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	EmployeeCode *string `json:"employee_code" binding:"omitempty,max=50"`
	Role         string  `json:"role" binding:"omitempty,oneof=admin hr employee"`
	Designation  *string `json:"designation" binding:"omitempty,max=100"`
	Department   *string `json:"department" binding:"omitempty,max=100"`
	JoiningDate  string  `json:"joining_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateSelfRequest holds the contact fields an employee may edit themselves.
type UpdateSelfRequest struct {
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

type UpdateProfileRequest struct {
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
	EmployeeCode *string `json:"employee_code" binding:"omitempty,max=50"`
	Role         string  `json:"role" binding:"required,oneof=admin hr employee"`
	Designation  *string `json:"designation" binding:"omitempty,max=100"`
	Department   *string `json:"department" binding:"omitempty,max=100"`
}

type ProfileResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	LoginID          string  `json:"login_id"`
	EmployeeCode     *string `json:"employee_code"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	Role             string  `json:"role"`
	Designation      *string `json:"designation"`
	Department       *string `json:"department"`
	AttendanceStatus string  `json:"attendance_status"`
	IsFirstLogin     bool    `json:"is_first_login"`
	JoiningDate      string  `json:"joining_date"`
}

// CreatedProfileResponse is returned once; the temporary password is not stored in clear.
type CreatedProfileResponse struct {
	Profile           ProfileResponse `json:"profile"`
	TemporaryPassword string          `json:"temporary_password"`
}

type OptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
