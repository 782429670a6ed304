// Package notify is the outbound report-delivery boundary. The core hands
// it a recipient and a rendered payload; transport failures stay inside
// this package and never abort the caller's flow.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Message is a rendered payload with optional quick-reply option labels.
type Message struct {
	Text         string
	QuickReplies []string
}

// Notifier delivers one message to one user.
type Notifier interface {
	Send(ctx context.Context, userID int64, msg Message) error
}

// Telegram delivers through the Bot API sendMessage call. Only delivery
// lives here; keyboards and pagination stay out of the core.
type Telegram struct {
	token  string
	client *http.Client
}

func NewTelegram(token string) *Telegram {
	return &Telegram{token: token, client: &http.Client{Timeout: 10 * time.Second}}
}

func (t *Telegram) Send(ctx context.Context, userID int64, msg Message) error {
	payload := map[string]any{
		"chat_id":                  userID,
		"text":                     msg.Text,
		"disable_web_page_preview": true,
	}
	if len(msg.QuickReplies) > 0 {
		rows := make([][]map[string]string, 0, len(msg.QuickReplies))
		for _, label := range msg.QuickReplies {
			rows = append(rows, []map[string]string{{"text": label}})
		}
		payload["reply_markup"] = map[string]any{"keyboard": rows, "resize_keyboard": true}
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: status %d", resp.StatusCode)
	}
	return nil
}

// Log is the no-transport notifier used in development and tests.
type Log struct{ log *zap.Logger }

func NewLog(log *zap.Logger) *Log { return &Log{log: log} }

func (l *Log) Send(_ context.Context, userID int64, msg Message) error {
	l.log.Info("report delivered",
		zap.Int64("user_id", userID),
		zap.Int("text_len", len(msg.Text)),
		zap.Strings("quick_replies", msg.QuickReplies),
	)
	return nil
}

// BroadcastResult counts the outcome of a bulk delivery.
type BroadcastResult struct {
	Sent    int     `json:"sent"`
	Skipped int     `json:"skipped"`
	Failed  []int64 `json:"failed,omitempty"`
}

// Broadcast delivers a payload to every recipient, skipping failures
// (blocked or unknown recipients) instead of propagating them.
func Broadcast(ctx context.Context, n Notifier, log *zap.Logger, recipients []int64, msg Message) BroadcastResult {
	var res BroadcastResult
	for _, id := range recipients {
		if err := n.Send(ctx, id, msg); err != nil {
			log.Warn("broadcast delivery skipped", zap.Int64("user_id", id), zap.Error(err))
			res.Skipped++
			res.Failed = append(res.Failed, id)
			continue
		}
		res.Sent++
	}
	return res
}
