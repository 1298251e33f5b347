package processor

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"jobradar/internal/cache/memory"
	"jobradar/internal/config"
	"jobradar/internal/models"
	"jobradar/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu       sync.Mutex
	inserted []models.Job
	touched  []string
}

func (f *fakeStore) Insert(ctx context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, *job)
	return nil
}

func (f *fakeStore) Touch(ctx context.Context, id string, lastSeen time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeStore) List(ctx context.Context, q store.Query) ([]models.Job, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) NotifyJob(ctx context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, job.ID)
	return nil
}

func newTestProcessor(maxPosts int) (*JobProcessor, *fakeStore, *fakeNotifier) {
	st := &fakeStore{}
	nt := &fakeNotifier{}
	cfg := &config.Config{
		SeenTTL:         time.Hour,
		PollingInterval: time.Hour,
		MaxPostsPerRun:  maxPosts,
	}
	p := NewJobProcessor(zap.NewNop(), st, memory.New(), nt, cfg)
	p.now = func() time.Time { return testNow }
	return p, st, nt
}

func rawJob(t *testing.T, company, title, url string) []byte {
	t.Helper()
	j := models.Job{
		Company:  company,
		Title:    title,
		ApplyURL: url,
		Source:   "feed",
	}
	j.RefreshID()
	data, err := json.Marshal(j)
	require.NoError(t, err)
	return data
}

func TestProcessJobStoresAndNotifies(t *testing.T) {
	p, st, nt := newTestProcessor(5)

	raw := rawJob(t, "Google", "Data Analyst", "https://careers.google.com/j/1")
	require.NoError(t, p.ProcessJob(context.Background(), raw))

	require.Len(t, st.inserted, 1)
	job := st.inserted[0]
	assert.Equal(t, "Google", job.Company)
	assert.Equal(t, models.TierFAANG, job.Tier)
	assert.Equal(t, "Data Analytics", job.Category)
	assert.Equal(t, testNow, job.LastSeen)

	assert.Len(t, nt.sent, 1)
	assert.Empty(t, st.touched)
}

func TestProcessJobDeduplicates(t *testing.T) {
	p, st, nt := newTestProcessor(5)

	raw := rawJob(t, "Google", "Data Analyst", "https://careers.google.com/j/1")
	require.NoError(t, p.ProcessJob(context.Background(), raw))
	require.NoError(t, p.ProcessJob(context.Background(), raw))

	assert.Len(t, st.inserted, 1, "duplicate must not insert a second row")
	assert.Len(t, nt.sent, 1, "duplicate must not notify twice")
	assert.Len(t, st.touched, 1, "duplicate refreshes last_seen")
}

func TestProcessJobNotifyCap(t *testing.T) {
	p, st, nt := newTestProcessor(1)

	require.NoError(t, p.ProcessJob(context.Background(), rawJob(t, "Google", "Data Analyst", "https://g/1")))
	require.NoError(t, p.ProcessJob(context.Background(), rawJob(t, "Stripe", "Product Analyst", "https://s/2")))

	assert.Len(t, st.inserted, 2, "the cap limits notifications, not storage")
	assert.Len(t, nt.sent, 1)
}

func TestProcessJobNotifyCapResetsNextWindow(t *testing.T) {
	p, _, nt := newTestProcessor(1)

	require.NoError(t, p.ProcessJob(context.Background(), rawJob(t, "Google", "Data Analyst", "https://g/1")))
	require.NoError(t, p.ProcessJob(context.Background(), rawJob(t, "Stripe", "Product Analyst", "https://s/2")))
	require.Len(t, nt.sent, 1)

	p.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	require.NoError(t, p.ProcessJob(context.Background(), rawJob(t, "Uber", "Insights Analyst", "https://u/3")))

	assert.Len(t, nt.sent, 2)
}

func TestProcessJobRejectsGarbage(t *testing.T) {
	p, st, _ := newTestProcessor(5)

	err := p.ProcessJob(context.Background(), []byte("not json"))
	assert.Error(t, err)
	assert.Empty(t, st.inserted)
}
