package jwt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMissingClaim = errors.New("claim is missing or invalid")

// Subject is who an access token is issued to. Bootstrap admins have no EmployeeID.
type Subject struct {
	EmployeeID string
	LineUserID string
	Name       string
	Role       string
}

type Service interface {
	GenerateAccessToken(sub Subject) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(sub Subject) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"employee_id":  sub.EmployeeID,
		"line_user_id": sub.LineUserID,
		"name":         sub.Name,
		"role":         sub.Role,
		"type":         "access",
		"exp":          expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// EmployeeIDFromContext reads the employee_id claim set by jwtauth.Verifier.
func EmployeeIDFromContext(ctx context.Context) (string, error) {
	return stringClaim(ctx, "employee_id")
}

func RoleFromContext(ctx context.Context) (string, error) {
	return stringClaim(ctx, "role")
}

func stringClaim(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return "", ErrMissingClaim
	}
	return v, nil
}

// ActorFromContext names the caller for audit fields: the display name, then
// the employee ID, then the role for bootstrap admins.
func ActorFromContext(ctx context.Context) string {
	for _, key := range []string{"name", "employee_id", "role"} {
		if v, err := stringClaim(ctx, key); err == nil {
			return v
		}
	}
	return "unknown"
}
