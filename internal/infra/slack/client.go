// internal/infra/slack/client.go
package slack

import (
	"context"
	"fmt"

	"worktime_notifier/internal/domain/notifier"

	"github.com/slack-go/slack"
)

// Notifier posts to a channel through the Slack Web API.
type Notifier struct {
	api     *slack.Client
	channel string
}

// NewNotifier validates credentials and builds the client.
// Extra options are passed to slack.New (tests point OptionAPIURL at a stub server).
func NewNotifier(token, channel string, opts ...slack.Option) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("SLACK_TOKEN is required: %w", notifier.ErrMissingToken)
	}
	if channel == "" {
		return nil, fmt.Errorf("SLACK_CHANNEL is required: %w", notifier.ErrMissingChannel)
	}
	return &Notifier{api: slack.New(token, opts...), channel: channel}, nil
}

// Send posts text to the channel.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if _, _, err := n.api.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("slack chat.postMessage: %w", err)
	}
	return nil
}

// CheckConnectivity verifies the token with auth.test and that the channel is visible.
func (n *Notifier) CheckConnectivity(ctx context.Context) (notifier.Connectivity, error) {
	conn := notifier.Connectivity{Provider: "slack", Channel: n.channel}

	auth, err := n.api.AuthTestContext(ctx)
	if err != nil {
		return conn, fmt.Errorf("slack authentication failed: %w", err)
	}
	conn.Identity = fmt.Sprintf("%s (%s)", auth.User, auth.Team)

	ch, err := n.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: n.channel})
	if err != nil {
		return conn, fmt.Errorf("cannot access channel '%s': %w", n.channel, err)
	}
	if ch != nil && ch.Name != "" {
		conn.Channel = "#" + ch.Name
	}
	return conn, nil
}
