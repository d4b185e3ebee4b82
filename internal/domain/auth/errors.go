package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrLineAccountNotLinked   = errors.New("line account is not registered as an employee")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrStateCookieEmpty       = errors.New("state cookie is empty")
	ErrStateParamEmpty        = errors.New("state parameter is empty")
	ErrStateMismatch          = errors.New("state mismatch")
	ErrCodeValueEmpty         = errors.New("code value is empty")
	ErrLineAccessDeniedByUser = errors.New("line access denied by user")
	ErrLineUnavailable        = errors.New("line platform request failed")
)
