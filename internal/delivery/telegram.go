// Package delivery provides the transports the scheduler fires into.
package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/notexe/remind-bot/internal/reminder"
)

// Telegram sends reminder messages through the Telegram Bot API. Person
// and group reminders both map to a chat id; a record without a target
// falls back to the configured default chat.
type Telegram struct {
	botToken      string
	defaultChatID string
	client        *http.Client
}

// NewTelegram creates a sender for the given bot token.
func NewTelegram(botToken, defaultChatID string) *Telegram {
	return &Telegram{
		botToken:      botToken,
		defaultChatID: defaultChatID,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Deliver implements reminder.Deliverer. Messages are sent as plain
// text so reminder content can never break the parse mode.
func (t *Telegram) Deliver(target string, _ reminder.TargetKind, text string) error {
	chatID := target
	if chatID == "" {
		chatID = t.defaultChatID
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var tgResp sendMessageResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}
	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}
	return nil
}
