package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrLineUserIDExists        = errors.New("LINE user is already registered")
	ErrInvalidLineUserID       = errors.New("invalid LINE user ID")
	ErrInvalidRole             = errors.New("role must be admin or employee")
	ErrEmployeeInactive        = errors.New("employee is inactive")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrCannotDeactivateSelf    = errors.New("cannot deactivate your own employee record")
)
