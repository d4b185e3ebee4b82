package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/line-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

// AdminAccount is the bootstrap administrator configured through the environment.
type AdminAccount struct {
	Username     string
	PasswordHash string
}

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	lineService oauth.LineService
	admin       AdminAccount
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, lineService oauth.LineService, admin AdminAccount) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		lineService:        lineService,
		admin:              admin,
	}
}

// LoginLIFF implements auth.AuthService.
func (a *AuthServiceImpl) LoginLIFF(ctx context.Context, req auth.LIFFLoginRequest) (auth.TokenResponse, error) {
	profile, err := a.lineService.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, oauth.ErrInvalidIDToken) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		slog.Error("failed to verify line id token", "error", err)
		return auth.TokenResponse{}, fmt.Errorf("failed to verify line id token: %w", auth.ErrLineUnavailable)
	}

	return a.loginEmployee(ctx, profile.UserID)
}

// LoginLine implements auth.AuthService.
func (a *AuthServiceImpl) LoginLine(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.lineService.VerifyToken(ctx, code)
	if err != nil {
		slog.Error("failed to exchange line code", "error", err)
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange line code: %w", auth.ErrLineUnavailable)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	return a.LoginLIFF(ctx, auth.LIFFLoginRequest{IDToken: idToken})
}

func (a *AuthServiceImpl) loginEmployee(ctx context.Context, lineUserID string) (auth.TokenResponse, error) {
	emp, err := a.EmployeeRepository.GetByLineUserID(ctx, lineUserID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Warn("LINE user without employee record tried to log in", "line_user_id", lineUserID)
			return auth.TokenResponse{}, auth.ErrLineAccountNotLinked
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by line user id: %w", err)
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	return a.issue(jwt.Subject{
		EmployeeID: emp.ID,
		LineUserID: emp.LineUserID,
		Name:       emp.Name,
		Role:       string(emp.Role),
	})
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	if a.admin.Username == "" || a.admin.PasswordHash == "" || req.Username != a.admin.Username {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issue(jwt.Subject{Name: a.admin.Username, Role: string(employee.RoleAdmin)})
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(accessToken)
	return nil
}

func (a *AuthServiceImpl) issue(sub jwt.Subject) (auth.TokenResponse, error) {
	accessToken, expiresIn, err := a.Service.GenerateAccessToken(sub)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresIn,
		EmployeeID:           sub.EmployeeID,
		Name:                 sub.Name,
		Role:                 sub.Role,
	}, nil
}
