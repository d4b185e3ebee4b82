package auth

import "github.com/cmlabs-hris/line-attendance-go/internal/pkg/validator"

// LIFFLoginRequest carries the ID token the LIFF SDK hands the front-end.
type LIFFLoginRequest struct {
	IDToken string `json:"id_token"`
}

func (r *LIFFLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IDToken) {
		errs.Add("id_token", "id_token is required")
	}
	if len(r.IDToken) > 4096 {
		errs.Add("id_token", "id_token must not exceed 4096 characters")
	}

	return errs.Err()
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *AdminLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}

	return errs.Err()
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	EmployeeID           string `json:"employee_id,omitempty"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
}
