package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	slackcmd "github.com/diegoclair/advice-rotation-bot/internal/domain/slack"
	"github.com/diegoclair/advice-rotation-bot/internal/notifier"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

const permissionHint = "I can't post in the notification channel. Invite me with `/invite @advice` and run `/advice` again."

type SlackHandler struct {
	rotation      contract.RotationService
	queue         contract.QueueService
	settings      contract.SettingsService
	signingSecret string
	log           logrus.FieldLogger
	now           func() time.Time
}

func New(rotation contract.RotationService, queue contract.QueueService, settings contract.SettingsService, signingSecret string, log logrus.FieldLogger) *SlackHandler {
	return &SlackHandler{
		rotation:      rotation,
		queue:         queue,
		settings:      settings,
		signingSecret: signingSecret,
		log:           log.WithField("component", "slack_handler"),
		now:           time.Now,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		h.log.WithError(err).Warn("Rejected slash command with invalid signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respond(w, h.createErrorResponse(err.Error()+". Try `/advice help`"))
		return
	}

	h.log.WithFields(logrus.Fields{"command": cmd.Type, "user_id": s.UserID}).Debug("Handling slash command")
	h.respond(w, h.handleCommand(r.Context(), cmd))
}

// HandleCalendar exports the pending notifications as an iCalendar feed
func (h *SlackHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.queue.Pending(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list pending notifications")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(jobs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := notifier.WriteCalendar(&buf, jobs, h.now()); err != nil {
		h.log.WithError(err).Error("Failed to encode calendar")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="advice.ics"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *SlackHandler) handleCommand(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	switch cmd.Type {
	case slackcmd.CmdNotify, slackcmd.CmdTime, slackcmd.CmdCountry, slackcmd.CmdTimezone:
		// settings changes reconcile on save
	case slackcmd.CmdTest:
	default:
		h.resume(ctx)
	}

	switch cmd.Type {
	case slackcmd.CmdToday:
		return h.handleToday(ctx)
	case slackcmd.CmdShow:
		return h.handleShow(ctx, cmd)
	case slackcmd.CmdList:
		return h.handleList(ctx, cmd)
	case slackcmd.CmdToggle:
		return h.handleToggle(ctx, cmd)
	case slackcmd.CmdDisable:
		return h.handleSetDisabled(ctx, cmd, true)
	case slackcmd.CmdEnable:
		return h.handleSetDisabled(ctx, cmd, false)
	case slackcmd.CmdStats:
		return h.handleStats(ctx)
	case slackcmd.CmdReset:
		return h.handleReset(ctx)
	case slackcmd.CmdCountry:
		return h.handleCountry(ctx, cmd)
	case slackcmd.CmdTimezone:
		return h.handleTimezone(ctx, cmd)
	case slackcmd.CmdNotify:
		return h.handleNotify(ctx, cmd)
	case slackcmd.CmdTime:
		return h.handleTime(ctx, cmd)
	case slackcmd.CmdStatus:
		return h.handleStatus(ctx)
	case slackcmd.CmdTest:
		return h.handleTest(ctx)
	case slackcmd.CmdHelp:
		return h.handleHelp()
	default:
		return h.createErrorResponse("Unknown command")
	}
}

// resume re-primes the notification queue whenever the user interacts with the bot
func (h *SlackHandler) resume(ctx context.Context) {
	if _, err := h.queue.Reconcile(ctx); err != nil {
		h.log.WithError(err).Warn("Reconcile on resume failed")
	}
}

func (h *SlackHandler) handleToday(ctx context.Context) *slack.Msg {
	item, err := h.rotation.GetToday(ctx)
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}
	if item == nil {
		return ephemeral("No advice available. Every item is disabled, use `/advice list` and `/advice enable ID`.")
	}

	var text strings.Builder
	text.WriteString("*Today's advice*\n")
	text.WriteString(formatItem(item))

	if first, err := h.settings.IsFirstLaunch(ctx); err == nil && first {
		text.WriteString("\n\nTip: pick your content with `/advice country CODE`.")
	}

	return ephemeral(text.String())
}

func (h *SlackHandler) handleShow(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if cmd.Arg(0) == "" {
		return h.createErrorResponse("Please give an item id: `/advice show ID`")
	}

	item, err := h.rotation.Item(ctx, cmd.Arg(0))
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	text := formatItem(item)
	if disabled, err := h.rotation.IsDisabled(ctx, item.ID); err == nil && disabled {
		text += "\n_This item is disabled._"
	}
	return ephemeral(text)
}

func (h *SlackHandler) handleList(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if cmd.Arg(0) == "" {
		sections, err := h.rotation.Sections(ctx)
		if err != nil {
			return h.createErrorResponse(errorMessage(err))
		}

		var text strings.Builder
		text.WriteString("*Sections:*\n")
		for _, section := range sections {
			text.WriteString(fmt.Sprintf("• `%s` %s (%d items)\n", section.ID, section.Title, len(section.Items)))
		}
		text.WriteString("Use `/advice list SECTION` to see the items.")
		return ephemeral(text.String())
	}

	items, err := h.rotation.SectionItems(ctx, cmd.Arg(0))
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	prefs, err := h.settings.Preferences(ctx)
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("*Items in %s:*\n", cmd.Arg(0)))
	for _, item := range items {
		marker := "✅"
		if slices.Contains(prefs.DisabledIDs, item.ID) {
			marker = "🚫"
		}
		text.WriteString(fmt.Sprintf("%s `%s` %s\n", marker, item.ID, item.Text))
	}
	return ephemeral(text.String())
}

func (h *SlackHandler) handleToggle(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if cmd.Arg(0) == "" {
		return h.createErrorResponse("Please give an item id: `/advice toggle ID`")
	}

	disabled, err := h.rotation.ToggleDisabled(ctx, cmd.Arg(0))
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}
	return ephemeral(fmt.Sprintf("✅ `%s` is now %s", cmd.Arg(0), disabledLabel(disabled)))
}

func (h *SlackHandler) handleSetDisabled(ctx context.Context, cmd *slackcmd.Command, disabled bool) *slack.Msg {
	if cmd.Arg(0) == "" {
		return h.createErrorResponse(fmt.Sprintf("Please give an item id: `/advice %s ID`", cmd.Type))
	}

	if err := h.rotation.SetDisabled(ctx, cmd.Arg(0), disabled); err != nil {
		return h.createErrorResponse(errorMessage(err))
	}
	return ephemeral(fmt.Sprintf("✅ `%s` is now %s", cmd.Arg(0), disabledLabel(disabled)))
}

func (h *SlackHandler) handleStats(ctx context.Context) *slack.Msg {
	stats, err := h.rotation.Stats(ctx)
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	return ephemeral(fmt.Sprintf("*Rotation progress:* %d of %d available items shown\nTotal: %d, disabled: %d",
		stats.Shown, stats.Available, stats.Total, stats.Disabled))
}

func (h *SlackHandler) handleReset(ctx context.Context) *slack.Msg {
	if err := h.rotation.ResetCycle(ctx); err != nil {
		return h.createErrorResponse(errorMessage(err))
	}
	return ephemeral("✅ Rotation cycle reset. Every enabled item can be picked again.")
}

func (h *SlackHandler) handleCountry(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if cmd.Arg(0) == "" {
		prefs, err := h.settings.Preferences(ctx)
		if err != nil {
			return h.createErrorResponse(errorMessage(err))
		}

		var text strings.Builder
		text.WriteString("*Countries:*\n")
		for _, country := range h.rotation.Countries() {
			current := ""
			if country.Code == prefs.SelectedCountry {
				current = " (current)"
			}
			text.WriteString(fmt.Sprintf("• `%s` %s%s\n", country.Code, country.Name, current))
		}
		return ephemeral(text.String())
	}

	result, err := h.settings.SetCountry(ctx, cmd.Arg(0))
	return h.settingsResponse(fmt.Sprintf("Country set to `%s`", strings.ToLower(cmd.Arg(0))), result, err)
}

func (h *SlackHandler) handleTimezone(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	if cmd.Arg(0) == "" {
		return h.createErrorResponse("Please give an IANA timezone: `/advice timezone Pacific/Auckland`")
	}

	result, err := h.settings.SetTimezone(ctx, cmd.Arg(0))
	return h.settingsResponse(fmt.Sprintf("Timezone set to `%s`", cmd.Arg(0)), result, err)
}

func (h *SlackHandler) handleNotify(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	var enabled bool
	switch strings.ToLower(cmd.Arg(0)) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return h.createErrorResponse("Use `/advice notify on` or `/advice notify off`")
	}

	result, err := h.settings.SetNotificationsEnabled(ctx, enabled)
	return h.settingsResponse(fmt.Sprintf("Notifications turned %s", strings.ToLower(cmd.Arg(0))), result, err)
}

func (h *SlackHandler) handleTime(ctx context.Context, cmd *slackcmd.Command) *slack.Msg {
	mode := strings.ToLower(cmd.Arg(0))

	switch {
	case mode == domain.TimeModeFixed && cmd.Arg(1) != "":
		result, err := h.settings.UpdateNotificationTime(ctx, mode, cmd.Arg(1), "")
		return h.settingsResponse(fmt.Sprintf("Notifications set for %s every day", cmd.Arg(1)), result, err)
	case mode == domain.TimeModeRandom && cmd.Arg(2) != "":
		result, err := h.settings.UpdateNotificationTime(ctx, mode, cmd.Arg(1), cmd.Arg(2))
		return h.settingsResponse(fmt.Sprintf("Notifications set for a random time between %s and %s", cmd.Arg(1), cmd.Arg(2)), result, err)
	}

	return h.createErrorResponse("Use `/advice time fixed HH:MM` or `/advice time random HH:MM HH:MM`")
}

func (h *SlackHandler) handleStatus(ctx context.Context) *slack.Msg {
	prefs, err := h.settings.Preferences(ctx)
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	pending, err := h.queue.Pending(ctx)
	if err != nil {
		return h.createErrorResponse(errorMessage(err))
	}

	var text strings.Builder
	text.WriteString("*Advice bot status*\n")
	text.WriteString(fmt.Sprintf("• Country: `%s`\n", prefs.SelectedCountry))
	text.WriteString(fmt.Sprintf("• Timezone: `%s`\n", prefs.Timezone))
	text.WriteString(fmt.Sprintf("• Notifications: %s\n", onOff(prefs.NotificationsEnabled)))

	if prefs.NotificationTime.Type == domain.TimeModeRandom {
		text.WriteString(fmt.Sprintf("• Time: random between %s and %s\n", prefs.NotificationTime.RandomStart, prefs.NotificationTime.RandomEnd))
	} else {
		text.WriteString(fmt.Sprintf("• Time: every day at %s\n", prefs.NotificationTime.FixedTime))
	}

	if len(pending) == 0 {
		text.WriteString("\nNo pending notifications.")
		return ephemeral(text.String())
	}

	text.WriteString(fmt.Sprintf("\n*Pending notifications (%d):*\n", len(pending)))
	for _, job := range pending {
		repeat := ""
		if job.Repeats {
			repeat = ", daily"
		}
		text.WriteString(fmt.Sprintf("• %s %s%s\n", localTime(job), job.Title, repeat))
	}
	return ephemeral(text.String())
}

func (h *SlackHandler) handleTest(ctx context.Context) *slack.Msg {
	err := h.queue.SendTest(ctx)
	switch {
	case err == nil:
		return ephemeral("✅ Test notification sent.")
	case errors.Is(err, domain.ErrPermissionDenied):
		return h.createErrorResponse(permissionHint)
	default:
		h.log.WithError(err).Warn("Test notification failed")
		return h.createErrorResponse("Could not send the test notification, please try again")
	}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return ephemeral(slackcmd.GetHelpText())
}

// settingsResponse reports a saved setting. A permission error means the
// setting was saved but nothing could be scheduled.
func (h *SlackHandler) settingsResponse(done string, result *entity.ReconcileResult, err error) *slack.Msg {
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return ephemeral(fmt.Sprintf("✅ %s\n⚠️ %s", done, permissionHint))
		}
		return h.createErrorResponse(errorMessage(err))
	}

	return ephemeral(fmt.Sprintf("✅ %s\n%s", done, describeResult(result)))
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return ephemeral(fmt.Sprintf("❌ %s", message))
}

func (h *SlackHandler) respond(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		h.log.WithError(err).Error("Failed to write slash command response")
	}
}

func ephemeral(text string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return permissionHint
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return "Storage is not available right now, please try again"
	default:
		return err.Error()
	}
}

func describeResult(result *entity.ReconcileResult) string {
	if result == nil {
		return ""
	}

	var text string
	switch result.Action {
	case entity.ActionCancel:
		text = "Notifications are off."
	case entity.ActionNoContent:
		text = "No advice is available to schedule."
	case entity.ActionNone:
		text = "Notifications are up to date."
	default:
		text = fmt.Sprintf("%d notification(s) scheduled.", result.Scheduled)
	}

	if result.Failed > 0 {
		text += fmt.Sprintf(" %d could not be updated and will be retried.", result.Failed)
	}
	return text
}

func formatItem(item *entity.ContentItem) string {
	text := fmt.Sprintf("> %s\n`%s`", item.Text, item.ID)
	if item.Query != "" {
		text += fmt.Sprintf(" _%s_", item.Query)
	}
	return text
}

func localTime(job *entity.NotificationJob) string {
	loc, err := time.LoadLocation(job.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return job.At.In(loc).Format("Mon 02 Jan 15:04 MST")
}

func disabledLabel(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "enabled"
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
