package linebot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LINE rejects text messages over 5000 characters.
const maxTextLength = 5000

var ErrNotConfigured = errors.New("line messaging channel is not configured")

// Notifier sends text pushes to a LINE user or group.
type Notifier interface {
	PushText(ctx context.Context, to string, text string) error
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, channelToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      channelToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// PushText sends one text message. Text longer than LINE allows is truncated.
func (c *Client) PushText(ctx context.Context, to string, text string) error {
	if c.token == "" {
		return ErrNotConfigured
	}
	if to == "" {
		return errors.New("push target is empty")
	}

	if r := []rune(text); len(r) > maxTextLength {
		text = string(r[:maxTextLength])
	}

	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/bot/message/push", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return fmt.Errorf("line push failed (status %d): %s", resp.StatusCode, e.Message)
		}
		return fmt.Errorf("line push failed (status %d)", resp.StatusCode)
	}

	return nil
}
