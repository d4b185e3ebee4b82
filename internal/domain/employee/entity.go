package employee

import (
	"time"
)

type Employee struct {
	ID         string
	LineUserID string
	Name       string
	Position   string
	// ShiftID is nil when the employee follows the default shift policy.
	ShiftID   *string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
