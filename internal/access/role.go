package access

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// NormalizeRole maps a stored or submitted role onto the canonical set.
// "hr" is a legacy spelling of admin; anything unknown is an employee.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "hr":
		return RoleAdmin
	default:
		return RoleEmployee
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsPrivileged() bool {
	return r == RoleAdmin
}
