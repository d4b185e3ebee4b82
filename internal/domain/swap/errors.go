package swap

import "errors"

var (
	ErrSwapRequestNotFound = errors.New("shift swap request not found")
)
