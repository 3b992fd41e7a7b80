package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/diegoclair/advice-rotation-bot/internal/handlers"
	"github.com/diegoclair/advice-rotation-bot/internal/handlers/test"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testItem = &entity.ContentItem{ID: "nz-wb-01", Text: "Take a short walk outside", Query: "Where could you walk today?"}

func expectResume(m test.ServiceMocks) {
	m.QueueServiceMock.EXPECT().Reconcile(gomock.Any()).Return(&entity.ReconcileResult{Action: entity.ActionNone}, nil).Times(1)
}

func decodeMsg(t *testing.T, resp *httptest.ResponseRecorder) slack.Msg {
	t.Helper()

	require.Equal(t, http.StatusOK, resp.Code)

	var response slack.Msg
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, slack.ResponseTypeEphemeral, response.ResponseType)
	return response
}

type handlerTestCase struct {
	name       string
	text       string
	buildMocks func(ctx context.Context, m test.ServiceMocks)
	contains   []string
}

func runHandlerTests(t *testing.T, tests []handlerTestCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.buildMocks != nil {
				tt.buildMocks(context.Background(), m)
			}

			recorder := test.CreateTestRecorder()
			req := test.CreateSlackRequest(t, tt.text, test.SigningSecret)

			handler.HandleSlashCommand(recorder, req)

			response := decodeMsg(t, recorder)
			for _, want := range tt.contains {
				assert.Contains(t, response.Text, want)
			}
		})
	}
}

func TestSlackHandler_HandleSlashCommand_Signature(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	recorder := test.CreateTestRecorder()
	req := test.CreateSlackRequest(t, "today", "wrong-secret")

	handler.HandleSlashCommand(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSlackHandler_HandleSlashCommand_Today(t *testing.T) {
	runHandlerTests(t, []handlerTestCase{
		{
			name: "Should show today's advice by default",
			text: "",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().GetToday(gomock.Any()).Return(testItem, nil).Times(1)
				m.SettingsServiceMock.EXPECT().IsFirstLaunch(gomock.Any()).Return(false, nil).Times(1)
			},
			contains: []string{"*Today's advice*", "Take a short walk outside", "`nz-wb-01`", "_Where could you walk today?_"},
		},
		{
			name: "Should suggest picking a country on first launch",
			text: "today",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().GetToday(gomock.Any()).Return(testItem, nil).Times(1)
				m.SettingsServiceMock.EXPECT().IsFirstLaunch(gomock.Any()).Return(true, nil).Times(1)
			},
			contains: []string{"Take a short walk outside", "/advice country CODE"},
		},
		{
			name: "Should explain an empty pool",
			text: "today",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().GetToday(gomock.Any()).Return(nil, nil).Times(1)
			},
			contains: []string{"No advice available"},
		},
		{
			name: "Should still answer when the resume reconcile fails",
			text: "today",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.QueueServiceMock.EXPECT().Reconcile(gomock.Any()).
					Return(&entity.ReconcileResult{}, &domain.PermissionError{Status: domain.PermissionDenied}).Times(1)
				m.RotationServiceMock.EXPECT().GetToday(gomock.Any()).Return(testItem, nil).Times(1)
				m.SettingsServiceMock.EXPECT().IsFirstLaunch(gomock.Any()).Return(false, nil).Times(1)
			},
			contains: []string{"Take a short walk outside"},
		},
		{
			name: "Should report storage failures",
			text: "today",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().GetToday(gomock.Any()).
					Return(nil, fmt.Errorf("failed to load preferences: %w: %w", domain.ErrCollaboratorUnavailable, errors.New("disk"))).Times(1)
			},
			contains: []string{"❌ Storage is not available"},
		},
		{
			name:     "Should reject unknown commands",
			text:     "dance",
			contains: []string{"❌ unknown command: dance", "/advice help"},
		},
	})
}

func TestSlackHandler_HandleSlashCommand_Items(t *testing.T) {
	runHandlerTests(t, []handlerTestCase{
		{
			name: "Should show one item and its disabled flag",
			text: "show nz-wb-01",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().Item(gomock.Any(), "nz-wb-01").Return(testItem, nil).Times(1)
				m.RotationServiceMock.EXPECT().IsDisabled(gomock.Any(), "nz-wb-01").Return(true, nil).Times(1)
			},
			contains: []string{"Take a short walk outside", "_This item is disabled._"},
		},
		{
			name: "Should report unknown items",
			text: "show nope",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().Item(gomock.Any(), "nope").
					Return(nil, fmt.Errorf("%w: nope", domain.ErrItemNotFound)).Times(1)
			},
			contains: []string{"❌ item not found: nope"},
		},
		{
			name: "Should ask for an id",
			text: "toggle",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
			},
			contains: []string{"❌ Please give an item id: `/advice toggle ID`"},
		},
		{
			name: "Should toggle an item",
			text: "toggle nz-wb-01",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().ToggleDisabled(gomock.Any(), "nz-wb-01").Return(true, nil).Times(1)
			},
			contains: []string{"✅ `nz-wb-01` is now disabled"},
		},
		{
			name: "Should enable an item",
			text: "enable nz-wb-01",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().SetDisabled(gomock.Any(), "nz-wb-01", false).Return(nil).Times(1)
			},
			contains: []string{"✅ `nz-wb-01` is now enabled"},
		},
		{
			name: "Should list sections",
			text: "list",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().Sections(gomock.Any()).Return([]entity.Section{
					{ID: "wellbeing", Title: "Wellbeing", Items: []entity.ContentItem{*testItem}},
				}, nil).Times(1)
			},
			contains: []string{"• `wellbeing` Wellbeing (1 items)"},
		},
		{
			name: "Should list the items of a section with their state",
			text: "list wellbeing",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().SectionItems(gomock.Any(), "wellbeing").Return([]entity.ContentItem{
					*testItem,
					{ID: "nz-wb-02", Text: "Drink a glass of water"},
				}, nil).Times(1)
				prefs := entity.Preferences{}
				prefs.DisabledIDs = []string{"nz-wb-02"}
				m.SettingsServiceMock.EXPECT().Preferences(gomock.Any()).Return(prefs, nil).Times(1)
			},
			contains: []string{"✅ `nz-wb-01`", "🚫 `nz-wb-02`"},
		},
		{
			name: "Should show stats",
			text: "stats",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().Stats(gomock.Any()).
					Return(entity.Stats{Total: 14, Disabled: 2, Available: 12, Shown: 5}, nil).Times(1)
			},
			contains: []string{"5 of 12 available items shown", "Total: 14, disabled: 2"},
		},
		{
			name: "Should reset the cycle",
			text: "reset",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.RotationServiceMock.EXPECT().ResetCycle(gomock.Any()).Return(nil).Times(1)
			},
			contains: []string{"✅ Rotation cycle reset"},
		},
	})
}

func TestSlackHandler_HandleSlashCommand_Settings(t *testing.T) {
	runHandlerTests(t, []handlerTestCase{
		{
			name: "Should turn notifications on without a resume pass",
			text: "notify on",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().SetNotificationsEnabled(gomock.Any(), true).
					Return(&entity.ReconcileResult{Action: entity.ActionRefill, Scheduled: 4}, nil).Times(1)
			},
			contains: []string{"✅ Notifications turned on", "4 notification(s) scheduled."},
		},
		{
			name: "Should keep the setting and explain a missing permission",
			text: "notify on",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().SetNotificationsEnabled(gomock.Any(), true).
					Return(&entity.ReconcileResult{}, &domain.PermissionError{Status: domain.PermissionPromptWithRationale}).Times(1)
			},
			contains: []string{"✅ Notifications turned on", "⚠️ I can't post in the notification channel"},
		},
		{
			name: "Should turn notifications off",
			text: "notify off",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().SetNotificationsEnabled(gomock.Any(), false).
					Return(&entity.ReconcileResult{Action: entity.ActionCancel, Cancelled: 4}, nil).Times(1)
			},
			contains: []string{"Notifications are off."},
		},
		{
			name:     "Should explain notify usage",
			text:     "notify maybe",
			contains: []string{"❌ Use `/advice notify on`"},
		},
		{
			name: "Should set a fixed time",
			text: "time fixed 08:30",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().UpdateNotificationTime(gomock.Any(), domain.TimeModeFixed, "08:30", "").
					Return(&entity.ReconcileResult{Action: entity.ActionFixed, Scheduled: 1}, nil).Times(1)
			},
			contains: []string{"Notifications set for 08:30 every day", "1 notification(s) scheduled."},
		},
		{
			name: "Should set a random window and report failures",
			text: "time random 07:00 09:00",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().UpdateNotificationTime(gomock.Any(), domain.TimeModeRandom, "07:00", "09:00").
					Return(&entity.ReconcileResult{Action: entity.ActionRefill, Scheduled: 3, Failed: 1}, nil).Times(1)
			},
			contains: []string{"between 07:00 and 09:00", "1 could not be updated"},
		},
		{
			name: "Should report an invalid window",
			text: "time random 09:00 07:00",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().UpdateNotificationTime(gomock.Any(), domain.TimeModeRandom, "09:00", "07:00").
					Return(nil, fmt.Errorf("%w: start 09:00 must be before end 07:00", domain.ErrInvalidTime)).Times(1)
			},
			contains: []string{"❌ invalid time: start 09:00 must be before end 07:00"},
		},
		{
			name:     "Should explain time usage",
			text:     "time random 07:00",
			contains: []string{"❌ Use `/advice time fixed HH:MM`"},
		},
		{
			name: "Should list countries",
			text: "country",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().Preferences(gomock.Any()).Return(entity.Preferences{SelectedCountry: "nz"}, nil).Times(1)
				m.RotationServiceMock.EXPECT().Countries().Return([]entity.Country{
					{Code: "nz", Name: "New Zealand"},
					{Code: "uk", Name: "United Kingdom"},
				}).Times(1)
			},
			contains: []string{"• `nz` New Zealand (current)", "• `uk` United Kingdom\n"},
		},
		{
			name: "Should change country",
			text: "country UK",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().SetCountry(gomock.Any(), "UK").
					Return(&entity.ReconcileResult{Action: entity.ActionNone}, nil).Times(1)
			},
			contains: []string{"✅ Country set to `uk`", "Notifications are up to date."},
		},
		{
			name: "Should set the timezone",
			text: "timezone Europe/London",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.SettingsServiceMock.EXPECT().SetTimezone(gomock.Any(), "Europe/London").
					Return(&entity.ReconcileResult{Action: entity.ActionNone}, nil).Times(1)
			},
			contains: []string{"✅ Timezone set to `Europe/London`"},
		},
	})
}

func TestSlackHandler_HandleSlashCommand_Status(t *testing.T) {
	prefs := entity.Preferences{SelectedCountry: "nz", NotificationsEnabled: true}
	prefs.NotificationTime = entity.NotificationTime{Type: domain.TimeModeRandom, RandomStart: "07:00", RandomEnd: "09:00"}
	prefs.Timezone = "UTC"

	runHandlerTests(t, []handlerTestCase{
		{
			name: "Should show settings and pending notifications",
			text: "status",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.SettingsServiceMock.EXPECT().Preferences(gomock.Any()).Return(prefs, nil).Times(1)
				m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return([]*entity.NotificationJob{
					{ID: 1, At: time.Date(2024, 1, 2, 7, 42, 0, 0, time.UTC), Tag: domain.TagDaily, Title: "Daily advice", Timezone: "UTC"},
					{ID: 2, At: time.Date(2024, 1, 5, 7, 0, 0, 0, time.UTC), Tag: domain.TagWarning, Title: "Still there?", Timezone: "UTC"},
				}, nil).Times(1)
			},
			contains: []string{"Notifications: on", "random between 07:00 and 09:00", "Pending notifications (2)", "Tue 02 Jan 07:42 UTC Daily advice"},
		},
		{
			name: "Should say when nothing is pending",
			text: "status",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
				m.SettingsServiceMock.EXPECT().Preferences(gomock.Any()).Return(prefs, nil).Times(1)
				m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return(nil, nil).Times(1)
			},
			contains: []string{"No pending notifications."},
		},
		{
			name: "Should show help",
			text: "help",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				expectResume(m)
			},
			contains: []string{"*Available Commands:*"},
		},
	})
}

func TestSlackHandler_HandleSlashCommand_Test(t *testing.T) {
	runHandlerTests(t, []handlerTestCase{
		{
			name: "Should send a test notification",
			text: "test",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.QueueServiceMock.EXPECT().SendTest(gomock.Any()).Return(nil).Times(1)
			},
			contains: []string{"✅ Test notification sent."},
		},
		{
			name: "Should explain how to grant permission",
			text: "test",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.QueueServiceMock.EXPECT().SendTest(gomock.Any()).
					Return(&domain.PermissionError{Status: domain.PermissionDenied}).Times(1)
			},
			contains: []string{"❌", "/invite @advice"},
		},
		{
			name: "Should report a failed send",
			text: "test",
			buildMocks: func(ctx context.Context, m test.ServiceMocks) {
				m.QueueServiceMock.EXPECT().SendTest(gomock.Any()).
					Return(fmt.Errorf("failed to send: %w", domain.ErrCollaboratorUnavailable)).Times(1)
			},
			contains: []string{"❌ Could not send the test notification"},
		},
	})
}

func TestSlackHandler_HandleCalendar(t *testing.T) {
	t.Run("Should return no content when nothing is pending", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return(nil, nil).Times(1)

		recorder := test.CreateTestRecorder()
		handler.HandleCalendar(recorder, httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("Should export pending notifications", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return([]*entity.NotificationJob{
			{ID: 1000000800, At: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), Repeats: true, Tag: domain.TagDaily, Title: "Daily advice", Body: "Drink a glass of water"},
		}, nil).Times(1)

		recorder := test.CreateTestRecorder()
		handler.HandleCalendar(recorder, httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Content-Type"), "text/calendar")
		assert.Contains(t, recorder.Body.String(), "BEGIN:VEVENT")
	})

	t.Run("Should fail when the queue cannot be read", func(t *testing.T) {
		m, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return(nil, domain.ErrCollaboratorUnavailable).Times(1)

		recorder := test.CreateTestRecorder()
		handler.HandleCalendar(recorder, httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestNewRouter(t *testing.T) {
	m, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	router := handlers.NewRouter(handler, prometheus.NewRegistry(), "")

	recorder := test.CreateTestRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())

	recorder = test.CreateTestRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = test.CreateTestRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/slack/commands", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	recorder = test.CreateTestRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/calendar.ics", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code, "calendar is off without a token")

	expectResume(m)
	m.RotationServiceMock.EXPECT().ResetCycle(gomock.Any()).Return(nil).Times(1)

	recorder = test.CreateTestRecorder()
	router.ServeHTTP(recorder, test.CreateSlackRequest(t, "reset", test.SigningSecret))
	assert.Contains(t, decodeMsg(t, recorder).Text, "Rotation cycle reset")
}

func TestNewRouter_CalendarToken(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		pending  bool
		wantCode int
	}{
		{name: "Should reject a missing token", target: "/calendar.ics", wantCode: http.StatusUnauthorized},
		{name: "Should reject a wrong token", target: "/calendar.ics?token=guess", wantCode: http.StatusUnauthorized},
		{name: "Should reject a token prefix", target: "/calendar.ics?token=s3cret-cal", wantCode: http.StatusUnauthorized},
		{name: "Should serve the feed with the right token", target: "/calendar.ics?token=s3cret-calendar", pending: true, wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.pending {
				m.QueueServiceMock.EXPECT().Pending(gomock.Any()).Return(nil, nil).Times(1)
			}

			router := handlers.NewRouter(handler, prometheus.NewRegistry(), "s3cret-calendar")

			recorder := test.CreateTestRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
