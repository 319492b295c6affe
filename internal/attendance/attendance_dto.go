package attendance

type RecordResponse struct {
	ID             string       `json:"id"`
	ProfileID      string       `json:"profile_id"`
	AttendanceDate string       `json:"attendance_date"`
	CheckInTime    *string      `json:"check_in_time"`
	CheckOutTime   *string      `json:"check_out_time"`
	Status         string       `json:"status"`
	Profile        *ProfileInfo `json:"profile,omitempty"`
}

type ProfileInfo struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
}

type TodayResponse struct {
	Record  *RecordResponse `json:"record"`
	OnLeave bool            `json:"on_leave"`
}

type RangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
