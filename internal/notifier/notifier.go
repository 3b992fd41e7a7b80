// Package notifier is the local notification collaborator. Pending jobs are
// stored in the database and delivered to a Slack channel when due.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

type Notifier struct {
	repo      contract.NotificationRepo
	slack     contract.SlackClient
	channelID string
	log       logrus.FieldLogger
}

func New(repo contract.NotificationRepo, slackClient contract.SlackClient, channelID string, log logrus.FieldLogger) *Notifier {
	return &Notifier{
		repo:      repo,
		slack:     slackClient,
		channelID: channelID,
		log:       log.WithField("component", "notifier"),
	}
}

func (n *Notifier) Schedule(ctx context.Context, job *entity.NotificationJob) error {
	return n.repo.Upsert(ctx, job)
}

func (n *Notifier) Cancel(ctx context.Context, id int64) error {
	return n.repo.Delete(ctx, id)
}

func (n *Notifier) ListPending(ctx context.Context) ([]*entity.NotificationJob, error) {
	return n.repo.List(ctx)
}

// Send posts the job to the delivery channel right away without storing it
func (n *Notifier) Send(ctx context.Context, job *entity.NotificationJob) error {
	if _, _, err := n.slack.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(messageText(job), false)); err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}

	n.log.WithFields(logrus.Fields{"channel_id": n.channelID, "tag": job.Tag}).Info("Notification sent")
	return nil
}

// CheckPermission maps bot membership of the delivery channel to a permission
// status. Direct message channels are always granted.
func (n *Notifier) CheckPermission(ctx context.Context) (domain.PermissionStatus, error) {
	if n.channelID == "" {
		return domain.PermissionDenied, nil
	}
	if strings.HasPrefix(n.channelID, "D") {
		return domain.PermissionGranted, nil
	}

	channel, err := n.slack.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: n.channelID})
	if err != nil {
		if isChannelGone(err) {
			return domain.PermissionDenied, nil
		}
		return "", fmt.Errorf("failed to get channel info: %w", err)
	}

	switch {
	case channel.IsArchived:
		return domain.PermissionDenied, nil
	case channel.IsMember:
		return domain.PermissionGranted, nil
	case channel.IsPrivate:
		// a bot cannot join a private channel on its own
		return domain.PermissionPromptWithRationale, nil
	default:
		return domain.PermissionPrompt, nil
	}
}

// RequestPermission joins the delivery channel when that is possible
func (n *Notifier) RequestPermission(ctx context.Context) (domain.PermissionStatus, error) {
	status, err := n.CheckPermission(ctx)
	if err != nil || status != domain.PermissionPrompt {
		return status, err
	}

	_, warning, _, err := n.slack.JoinConversationContext(ctx, n.channelID)
	if err != nil {
		if isChannelGone(err) {
			return domain.PermissionDenied, nil
		}
		return "", fmt.Errorf("failed to join channel %s: %w", n.channelID, err)
	}
	if warning != "" {
		n.log.WithField("warning", warning).Warn("Joined delivery channel with warning")
	}

	n.log.WithField("channel_id", n.channelID).Info("Joined delivery channel")
	return domain.PermissionGranted, nil
}

func isChannelGone(err error) bool {
	var slackErr slack.SlackErrorResponse
	if !errors.As(err, &slackErr) {
		return false
	}
	switch slackErr.Err {
	case "channel_not_found", "is_archived", "method_not_supported_for_channel_type":
		return true
	}
	return false
}

func messageText(job *entity.NotificationJob) string {
	return fmt.Sprintf("*%s*\n%s", job.Title, job.Body)
}
