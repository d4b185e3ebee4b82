package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrOverlappingLeave     = errors.New("leave request overlaps an existing request")
	ErrInvalidLeaveType     = errors.New("leave type must be sick, personal or vacation")
)
