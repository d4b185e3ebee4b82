package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/line-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/line-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/oauth"
	"github.com/go-chi/jwtauth/v5"
)

const lineCallbackPath = "/api/v1/auth/line/callback"

type AuthHandler interface {
	LoginLIFF(w http.ResponseWriter, r *http.Request)
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginWithLine(w http.ResponseWriter, r *http.Request)
	OAuthCallbackLine(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	lineService oauth.LineService
	frontendURL string
	secure      bool
}

func NewAuthHandler(authService auth.AuthService, lineService oauth.LineService, frontendURL string, secureCookies bool) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		lineService: lineService,
		frontendURL: frontendURL,
		secure:      secureCookies,
	}
}

// LoginLIFF implements AuthHandler.
func (a *AuthHandlerImpl) LoginLIFF(w http.ResponseWriter, r *http.Request) {
	var req auth.LIFFLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("LoginLIFF decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.LoginLIFF(r.Context(), req)
	if err != nil {
		slog.Error("LoginLIFF service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee logged in via LIFF", "employee_id", tokenResponse.EmployeeID)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// LoginAdmin implements AuthHandler.
func (a *AuthHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.AdminLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("LoginAdmin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.LoginAdmin(r.Context(), req)
	if err != nil {
		slog.Warn("LoginAdmin failed", "username", req.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Admin logged in", "username", req.Username)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// LoginWithLine implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithLine(w http.ResponseWriter, r *http.Request) {
	state := a.lineService.GenerateState(r.UserAgent())
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     lineCallbackPath,
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.lineService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackLine implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackLine(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/line?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	stateReq, err := r.Cookie("state")
	if err != nil {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}

	errorValue := r.URL.Query().Get("error")
	if errorValue == "access_denied" {
		slog.Warn("LINE login cancelled", "error", auth.ErrLineAccessDeniedByUser)
		redirectWithError("access_denied")
		return
	}
	if errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	if stateReq.Value == "" {
		slog.Error("State cookie is empty", "error", auth.ErrStateCookieEmpty)
		redirectWithError("state_cookie_empty")
		return
	}

	stateParam := r.URL.Query().Get("state")
	if stateParam == "" {
		slog.Error("State parameter is empty", "error", auth.ErrStateParamEmpty)
		redirectWithError("state_param_empty")
		return
	}
	if stateParam != stateReq.Value {
		slog.Error("State mismatch", "error", auth.ErrStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Error("Code value is empty", "error", auth.ErrCodeValueEmpty)
		redirectWithError("code_empty")
		return
	}

	tokenResponse, err := a.authService.LoginLine(r.Context(), code)
	if err != nil {
		slog.Error("Failed to login with LINE", "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    "",
		Path:     lineCallbackPath,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("Employee logged in via LINE Login", "employee_id", tokenResponse.EmployeeID)

	redirectURL := fmt.Sprintf("%s/auth/callback/line?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
