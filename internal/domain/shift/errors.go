package shift

import "errors"

var (
	ErrShiftNotFound         = errors.New("shift policy not found")
	ErrNoDefaultShift        = errors.New("no default shift policy configured")
	ErrMultipleDefaultShifts = errors.New("more than one shift policy is marked as default")
	ErrCannotDeleteDefault   = errors.New("the default shift policy cannot be deleted")
	ErrShiftInUse            = errors.New("shift policy is assigned to employees")
)
