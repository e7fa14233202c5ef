// Package notifications pushes run summaries to an ntfy topic so the
// operator hears about orders that need a human without watching logs.
package notifications

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		topic:   topic,
		enabled: enabled,
	}
}

// Send posts one message to the topic. Disabled clients drop it silently.
func (c *Client) Send(ctx context.Context, title, message string) error {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)
	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Title", title)
	req.Header.Set("Tags", "package")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification failed with status %d", resp.StatusCode)
	}

	log.Debug().Str("title", title).Msg("Sent notification")
	return nil
}

// NotifyRunSummary reports one reconciliation pass. Only passes with
// something actionable produce a message; routine passes stay quiet.
func (c *Client) NotifyRunSummary(ctx context.Context, newOrders int, interrupted, receiptMissing []string) {
	if !c.enabled {
		return
	}
	if newOrders == 0 && len(interrupted) == 0 && len(receiptMissing) == 0 {
		return
	}

	var lines []string
	if newOrders > 0 {
		lines = append(lines, fmt.Sprintf("%d new order(s) tracked", newOrders))
	}
	if len(interrupted) > 0 {
		lines = append(lines, fmt.Sprintf("Check interrupts on orders: %s", strings.Join(interrupted, ", ")))
	}
	if len(receiptMissing) > 0 {
		lines = append(lines, fmt.Sprintf("Receipt upload needed for orders: %s", strings.Join(receiptMissing, ", ")))
	}

	if err := c.Send(ctx, "TMS order sync", strings.Join(lines, "\n")); err != nil {
		log.Warn().Err(err).Msg("Failed to send run summary notification")
	}
}
