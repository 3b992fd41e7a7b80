package contract

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackClient defines the Slack operations used by the bot.
// This allows mocking in tests while keeping the real implementation simple
type SlackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	JoinConversationContext(ctx context.Context, channelID string) (*slack.Channel, string, []string, error)
}
