package auth

import (
	"context"
)

type AuthService interface {
	// LoginLIFF verifies a LINE ID token and signs in the linked employee.
	LoginLIFF(ctx context.Context, req LIFFLoginRequest) (TokenResponse, error)
	// LoginLine finishes the LINE Login web flow for an authorization code.
	LoginLine(ctx context.Context, code string) (TokenResponse, error)
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
}
