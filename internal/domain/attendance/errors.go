package attendance

import "errors"

var (
	// Check-in errors
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out")
	ErrInvalidTransition    = errors.New("status change is not allowed from the current status")
	ErrLocationRequired     = errors.New("location is required to check in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrAttendanceExists   = errors.New("attendance already recorded for this employee and date")
)
