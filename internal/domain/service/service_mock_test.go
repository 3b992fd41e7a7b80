package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"github.com/diegoclair/advice-rotation-bot/internal/logger"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/diegoclair/advice-rotation-bot/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockKV          *mocks.MockKVStore
	mockCatalog     *mocks.MockCatalog
	mockNotifier    *mocks.MockNotifier
	mockQueue       *mocks.MockQueueService
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	kv := mocks.NewMockKVStore(ctrl)
	dm.EXPECT().KV().Return(kv).AnyTimes()

	m = allMocks{
		mockDataManager: dm,
		mockKV:          kv,
		mockCatalog:     mocks.NewMockCatalog(ctrl),
		mockNotifier:    mocks.NewMockNotifier(ctrl),
		mockQueue:       mocks.NewMockQueueService(ctrl),
	}

	// validate service creation
	instance := NewInstance(dm, m.mockCatalog, m.mockNotifier, newTestMetrics(), logger.Discard(), Options{})
	require.NotNil(t, instance)

	return
}

func newTestMetrics() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

// testClock is a settable clock shared by the services under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func seededIntn(seed uint64) func(n int) int {
	return rand.New(rand.NewPCG(seed, seed+1)).IntN
}

// memoryKV backs a KVStore mock with a map
type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV(mock *mocks.MockKVStore) *memoryKV {
	kv := &memoryKV{values: map[string]string{}}

	mock.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) (string, bool, error) {
		kv.mu.Lock()
		defer kv.mu.Unlock()
		v, ok := kv.values[key]
		return v, ok, nil
	}).AnyTimes()

	mock.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key, value string) error {
		kv.mu.Lock()
		defer kv.mu.Unlock()
		kv.values[key] = value
		return nil
	}).AnyTimes()

	return kv
}

func (kv *memoryKV) putPreferences(t *testing.T, prefs entity.Preferences) {
	t.Helper()
	raw, err := json.Marshal(prefs)
	require.NoError(t, err)

	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[domain.PreferencesKey] = string(raw)
}

func (kv *memoryKV) preferences(t *testing.T) entity.Preferences {
	t.Helper()
	kv.mu.Lock()
	defer kv.mu.Unlock()

	var prefs entity.Preferences
	require.NoError(t, json.Unmarshal([]byte(kv.values[domain.PreferencesKey]), &prefs))
	return prefs
}

// memoryNotifier backs a Notifier mock with a map of pending jobs
type memoryNotifier struct {
	mu      sync.Mutex
	pending map[int64]*entity.NotificationJob
}

func newMemoryNotifier(mock *mocks.MockNotifier) *memoryNotifier {
	n := &memoryNotifier{pending: map[int64]*entity.NotificationJob{}}

	mock.EXPECT().CheckPermission(gomock.Any()).Return(domain.PermissionGranted, nil).AnyTimes()

	mock.EXPECT().ListPending(gomock.Any()).DoAndReturn(func(context.Context) ([]*entity.NotificationJob, error) {
		return n.list(), nil
	}).AnyTimes()

	mock.EXPECT().Schedule(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job *entity.NotificationJob) error {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.pending[job.ID] = job
		return nil
	}).AnyTimes()

	mock.EXPECT().Cancel(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id int64) error {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.pending, id)
		return nil
	}).AnyTimes()

	return n
}

func (n *memoryNotifier) list() []*entity.NotificationJob {
	n.mu.Lock()
	defer n.mu.Unlock()

	jobs := make([]*entity.NotificationJob, 0, len(n.pending))
	for _, job := range n.pending {
		jobs = append(jobs, job)
	}
	return jobs
}

func (n *memoryNotifier) countByTag(tag string) int {
	count := 0
	for _, job := range n.list() {
		if job.Tag == tag {
			count++
		}
	}
	return count
}

func testSections() []entity.Section {
	return []entity.Section{
		{
			ID:    "wellbeing",
			Title: "Wellbeing",
			Items: []entity.ContentItem{
				{ID: "nz-1", Text: "Take a short walk outside"},
				{ID: "nz-2", Text: "Drink a glass of water"},
				{ID: "nz-3", Text: "Message a friend"},
			},
		},
		{
			ID:    "money",
			Title: "Money",
			Items: []entity.ContentItem{
				{ID: "nz-4", Text: "Check one subscription you no longer use", Query: "Which one can go?"},
				{ID: "nz-5", Text: "Write down today's spending"},
			},
		},
	}
}

func testCountries() []entity.Country {
	return []entity.Country{
		{Code: "nz", Name: "New Zealand", Sections: testSections()},
		{Code: "uk", Name: "United Kingdom", Sections: []entity.Section{
			{ID: "home", Title: "Home", Items: []entity.ContentItem{{ID: "uk-1", Text: "Open a window for ten minutes"}}},
		}},
	}
}

func expectCatalog(catalog *mocks.MockCatalog) {
	countries := testCountries()
	catalog.EXPECT().Countries().Return(countries).AnyTimes()
	for _, country := range countries {
		catalog.EXPECT().Sections(country.Code).Return(country.Sections, nil).AnyTimes()
	}
}
