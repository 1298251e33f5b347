package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"jobradar/internal/cache/memory"
	"jobradar/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const feedBody = `[
	{"employer_name": "Google", "job_title": "Data Analyst", "job_city": "New York", "job_state": "NY", "job_apply_link": "https://careers.google.com/j/1", "job_posted_at": "2d"},
	{"employer_name": "Stripe", "job_title": "Product Analyst", "job_apply_link": "https://stripe.com/jobs/2", "job_posted_at": "Just posted"}
]`

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		FeedURL:      srv.URL,
		FeedTimeout:  5 * time.Second,
		FeedCacheTTL: time.Minute,
	}
	return NewClient(zap.NewNop(), cfg, memory.New()), srv
}

func TestFetchJobs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedBody))
	}))

	jobs, err := client.FetchJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Google", jobs[0].EmployerName)
	assert.Equal(t, "Data Analyst", jobs[0].JobTitle)
	assert.Equal(t, "2d", jobs[0].JobPostedAt)
	assert.Equal(t, "Stripe", jobs[1].EmployerName)
}

func TestFetchJobsUsesCache(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(feedBody))
	}))

	_, err := client.FetchJobs(context.Background())
	require.NoError(t, err)
	_, err = client.FetchJobs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchJobsEmptyFeed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))

	jobs, err := client.FetchJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestFetchJobsServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchJobs(context.Background())
	assert.Error(t, err)
}

func TestFetchJobsMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))

	_, err := client.FetchJobs(context.Background())
	assert.Error(t, err)
}
