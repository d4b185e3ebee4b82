package overtime

import "errors"

var (
	ErrOvertimeRequestNotFound = errors.New("overtime request not found")
	ErrDuplicateOvertime       = errors.New("an overtime request already exists for this date")
)
