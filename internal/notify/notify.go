// Package notify delivers "your turn" nudges to participants. The engine
// only decides that a notification is due; delivery mechanics live here,
// behind the Notifier interface.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Notification describes a turn that has become due.
type Notification struct {
	MatchID     string `json:"match_id"`
	Participant string `json:"participant"`
	Message     string `json:"message"`
	GameType    string `json:"game_type"`
	Action      string `json:"action"`
}

// Notifier is the capability the engine is constructed with.
type Notifier interface {
	TurnDue(ctx context.Context, n Notification) error
}

// Webhook POSTs notifications as JSON to a configured endpoint. Failures are
// the caller's to log; a missed nudge never fails a game action.
type Webhook struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewWebhook creates a webhook notifier.
func NewWebhook(url string, logger *log.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.WithPrefix("notify"),
	}
}

// TurnDue posts the notification.
func (w *Webhook) TurnDue(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}

	w.logger.Debug("Notified participant", "participant", n.Participant, "match", n.MatchID)
	return nil
}

// Nop discards all notifications, for tests and local simulation.
type Nop struct{}

// TurnDue does nothing.
func (Nop) TurnDue(context.Context, Notification) error { return nil }
