package attendance

import (
	"time"

	"go-hrms/internal/shared/dateutil"
)

func toResponse(r Record, loc *time.Location) RecordResponse {
	resp := RecordResponse{
		ID:             r.ID.String(),
		ProfileID:      r.ProfileID.String(),
		AttendanceDate: dateutil.Format(r.AttendanceDate),
		CheckInTime:    formatTimestamp(r.CheckInTime, loc),
		CheckOutTime:   formatTimestamp(r.CheckOutTime, loc),
		Status:         r.Status,
	}
	if r.Profile != nil {
		resp.Profile = &ProfileInfo{
			ID:           r.Profile.ID.String(),
			FullName:     r.Profile.FullName,
			EmployeeCode: r.Profile.EmployeeCode,
			Department:   r.Profile.Department,
		}
	}
	return resp
}

func toResponses(rows []Record, loc *time.Location) []RecordResponse {
	out := make([]RecordResponse, len(rows))
	for i, r := range rows {
		out[i] = toResponse(r, loc)
	}
	return out
}

func formatTimestamp(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
