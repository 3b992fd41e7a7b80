package test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/handlers"
	"github.com/diegoclair/advice-rotation-bot/internal/logger"
	"github.com/diegoclair/advice-rotation-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const SigningSecret = "test-signing-secret"

type ServiceMocks struct {
	RotationServiceMock *mocks.MockRotationService
	QueueServiceMock    *mocks.MockQueueService
	SettingsServiceMock *mocks.MockSettingsService
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.SlackHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		RotationServiceMock: mocks.NewMockRotationService(ctrl),
		QueueServiceMock:    mocks.NewMockQueueService(ctrl),
		SettingsServiceMock: mocks.NewMockSettingsService(ctrl),
	}

	handler = handlers.New(m.RotationServiceMock, m.QueueServiceMock, m.SettingsServiceMock, SigningSecret, logger.Discard())

	return
}

// CreateSlackRequest creates a properly signed /advice slash command request
func CreateSlackRequest(t *testing.T, text, signingSecret string) *http.Request {
	t.Helper()

	form := url.Values{
		"token":        {"test-token"},
		"team_id":      {"T123456789"},
		"team_domain":  {"test-team"},
		"channel_id":   {"D123456789"},
		"channel_name": {"directmessage"},
		"user_id":      {"U123456789"},
		"user_name":    {"test-user"},
		"command":      {"/advice"},
		"text":         {text},
		"response_url": {"https://hooks.slack.com/commands/test"},
		"trigger_id":   {"test-trigger-id"},
	}

	body := form.Encode()

	req, err := http.NewRequest(http.MethodPost, "/slack/commands", strings.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", generateSlackSignature(signingSecret, timestamp, body))

	return req
}

func generateSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return fmt.Sprintf("v0=%s", hex.EncodeToString(h.Sum(nil)))
}

func CreateTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
