package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testJob() *models.Job {
	j := &models.Job{
		Company:  "Google",
		Title:    "Data Analyst, New Grad",
		City:     "New York",
		State:    "NY",
		ApplyURL: "https://careers.google.com/j/1",
		Source:   "feed",
		PostedAt: testNow.Add(-2 * 24 * time.Hour),
	}
	j.RefreshID()
	return j
}

func TestNotifyJobPostsEmbed(t *testing.T) {
	var payload webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscord(srv.URL, 5*time.Second, zap.NewNop())
	d.now = func() time.Time { return testNow }

	require.NoError(t, d.NotifyJob(context.Background(), testJob()))

	require.Len(t, payload.Embeds, 1)
	e := payload.Embeds[0]
	assert.Equal(t, "Google — Data Analyst, New Grad", e.Title)
	assert.Equal(t, "https://careers.google.com/j/1", e.URL)

	require.Len(t, e.Fields, 3)
	assert.Equal(t, "feed", e.Fields[0].Value)
	assert.Equal(t, "📍 New York, NY", e.Fields[1].Value)
	assert.Equal(t, "2d", e.Fields[2].Value)
}

func TestNotifyJobDisabledWithoutWebhook(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	d := NewDiscord("", 5*time.Second, zap.NewNop())
	assert.NoError(t, d.NotifyJob(context.Background(), testJob()))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestNotifyJobRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDiscord(srv.URL, 5*time.Second, zap.NewNop())
	err := d.NotifyJob(context.Background(), testJob())
	assert.Error(t, err)
}

func TestNotifyJobServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDiscord(srv.URL, 5*time.Second, zap.NewNop())
	assert.Error(t, d.NotifyJob(context.Background(), testJob()))
}
