package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTelegramAPI = "https://api.telegram.org"

// Telegram delivers notifications via the Telegram Bot API.
type Telegram struct {
	botToken string
	chatID   string
	apiURL   string
	consent  Consent
	client   *http.Client
}

// NewTelegram creates a Telegram notifier. An empty apiURL uses the public Bot API.
func NewTelegram(botToken, chatID, apiURL string, consent Consent) *Telegram {
	if apiURL == "" {
		apiURL = defaultTelegramAPI
	}
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiURL:   strings.TrimRight(apiURL, "/"),
		consent:  consent,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (t *Telegram) Name() string { return "telegram" }

// Supported reports whether a bot token and chat are configured.
func (t *Telegram) Supported() bool {
	return t.botToken != "" && t.chatID != ""
}

func (t *Telegram) RequestPermission(ctx context.Context) (Permission, error) {
	return askConsent(ctx, t.consent, fmt.Sprintf("Send due-task reminders to Telegram chat %s?", t.chatID))
}

// Send posts the notification to the configured chat.
func (t *Telegram) Send(ctx context.Context, n Notification) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)

	payload := telegramSendRequest{
		ChatID:    t.chatID,
		Text:      fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Body)),
		ParseMode: "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}

	return nil
}
