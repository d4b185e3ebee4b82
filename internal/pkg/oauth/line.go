package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

var ErrInvalidIDToken = errors.New("line id token rejected")

// Endpoint is LINE Login v2.1.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://access.line.me/oauth2/v2.1/authorize",
	TokenURL:  "https://api.line.me/oauth2/v2.1/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const defaultVerifyURL = "https://api.line.me/oauth2/v2.1/verify"

type LineService interface {
	// GenerateState generates a random state string for OAuth2 flows.
	GenerateState(userAgent string) string
	// RedirectURL generates the LINE Login authorize URL with a state.
	RedirectURL(state string) string
	// VerifyToken exchanges the code for an OAuth2 token.
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyIDToken asks LINE to validate an ID token issued to this channel.
	VerifyIDToken(ctx context.Context, idToken string) (LineProfile, error)
}

type LineServiceImpl struct {
	config     *oauth2.Config
	verifyURL  string
	httpClient *http.Client
}

func NewLineService(channelID string, channelSecret string, redirectURL string, scopes []string) LineService {
	config := &oauth2.Config{
		ClientID:     channelID,
		ClientSecret: channelSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     Endpoint,
	}
	return &LineServiceImpl{config: config, verifyURL: defaultVerifyURL, httpClient: http.DefaultClient}
}

// LineProfile is the subset of verified ID token claims the app uses.
type LineProfile struct {
	UserID  string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

func (l *LineServiceImpl) GenerateState(userAgent string) string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	state := fmt.Sprintf("%s.%s", base64.URLEncoding.EncodeToString(b), userAgent)
	return base64.URLEncoding.EncodeToString([]byte(state))
}

func (l *LineServiceImpl) RedirectURL(state string) string {
	return l.config.AuthCodeURL(state)
}

func (l *LineServiceImpl) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := l.config.Exchange(ctx, code)
	if err != nil {
		return &oauth2.Token{}, err
	}
	return token, nil
}

func (l *LineServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (LineProfile, error) {
	form := url.Values{}
	form.Set("id_token", idToken)
	form.Set("client_id", l.config.ClientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return LineProfile{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return LineProfile{}, fmt.Errorf("failed to call line verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LineProfile{}, fmt.Errorf("%w: status %d", ErrInvalidIDToken, resp.StatusCode)
	}

	var profile LineProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return LineProfile{}, err
	}
	if profile.UserID == "" {
		return LineProfile{}, ErrInvalidIDToken
	}

	return profile, nil
}
