// internal/infra/slack/webhook.go
package slack

import (
	"context"
	"fmt"
	"net/url"

	"worktime_notifier/internal/domain/notifier"

	"github.com/slack-go/slack"
)

// WebhookNotifier posts through an incoming webhook. The webhook is bound to
// one channel on the Slack side, so there is no channel to configure.
type WebhookNotifier struct {
	url string
}

func NewWebhookNotifier(webhookURL string) (*WebhookNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("SLACK_WEBHOOK_URL is required: %w", notifier.ErrMissingToken)
	}
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, fmt.Errorf("invalid SLACK_WEBHOOK_URL: %w", err)
	}
	return &WebhookNotifier{url: webhookURL}, nil
}

func (n *WebhookNotifier) Send(ctx context.Context, text string) error {
	if err := slack.PostWebhookContext(ctx, n.url, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	return nil
}

// CheckConnectivity cannot probe a webhook without posting, so it only reports
// the configured endpoint host.
func (n *WebhookNotifier) CheckConnectivity(ctx context.Context) (notifier.Connectivity, error) {
	_ = ctx
	u, _ := url.Parse(n.url)
	return notifier.Connectivity{Provider: "slack-webhook", Identity: "incoming webhook", Channel: u.Host}, nil
}
