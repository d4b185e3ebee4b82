package shift

import (
	"fmt"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
)

// ResolvePolicy picks the policy governing emp: the explicitly assigned one, or
// the single organisation default when the employee has no assignment.
// A dangling assignment, a missing default or an ambiguous default is an error.
func ResolvePolicy(emp employee.Employee, policies []ShiftPolicy) (ShiftPolicy, error) {
	if emp.ShiftID != nil && *emp.ShiftID != "" {
		for _, p := range policies {
			if p.ID == *emp.ShiftID {
				return p, nil
			}
		}
		return ShiftPolicy{}, fmt.Errorf("employee %s assigned to shift %s: %w", emp.ID, *emp.ShiftID, ErrShiftNotFound)
	}

	return DefaultPolicy(policies)
}

// DefaultPolicy returns the one policy flagged IsDefault.
func DefaultPolicy(policies []ShiftPolicy) (ShiftPolicy, error) {
	var (
		found ShiftPolicy
		count int
	)
	for _, p := range policies {
		if p.IsDefault {
			found = p
			count++
		}
	}

	switch count {
	case 0:
		return ShiftPolicy{}, ErrNoDefaultShift
	case 1:
		return found, nil
	default:
		return ShiftPolicy{}, fmt.Errorf("%d defaults: %w", count, ErrMultipleDefaultShifts)
	}
}
