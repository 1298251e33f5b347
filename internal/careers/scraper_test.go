package careers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const listingHTML = `<html><body>
<ul>
  <li class="job"><a href="/careers/101">Data Analyst, New Grad</a><span class="location">New York, NY</span></li>
  <li class="job"><a href="/careers/102">Business Analyst</a><span class="location">Remote - US</span></li>
  <li class="job"><a href="/careers/101">Data Analyst, New Grad</a><span class="location">New York, NY</span></li>
  <li class="job"><a href="/careers/103">Insights Analyst</a></li>
</ul>
</body></html>`

func newTestScraper(t *testing.T, html string, status int) (*Scraper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return NewScraper(zap.NewNop(), 5*time.Second), srv
}

func TestScrapePage(t *testing.T) {
	s, srv := newTestScraper(t, listingHTML, http.StatusOK)

	jobs, err := s.ScrapePage(context.Background(), "Acme", srv.URL+"/careers")
	require.NoError(t, err)
	require.Len(t, jobs, 3, "duplicate listing rows collapse to one posting")

	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Data Analyst, New Grad", jobs[0].Title)
	assert.Equal(t, "New York", jobs[0].City)
	assert.Equal(t, "NY", jobs[0].State)
	assert.Equal(t, srv.URL+"/careers/101", jobs[0].ApplyURL)
	assert.Equal(t, "careers", jobs[0].Source)
	assert.NotEmpty(t, jobs[0].ID)

	assert.True(t, jobs[1].Remote)
	assert.Empty(t, jobs[1].City)

	assert.Equal(t, "Insights Analyst", jobs[2].Title)
	assert.Empty(t, jobs[2].City)
}

func TestScrapePageTableLayout(t *testing.T) {
	html := `<table>
		<tr class="job-row"><td class="title"><a href="/jobs/7">Reporting Analyst</a></td><td class="location">Austin, TX</td></tr>
	</table>`
	s, srv := newTestScraper(t, html, http.StatusOK)

	jobs, err := s.ScrapePage(context.Background(), "Acme", srv.URL)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Reporting Analyst", jobs[0].Title)
	assert.Equal(t, "Austin", jobs[0].City)
}

func TestScrapePageNoListings(t *testing.T) {
	s, srv := newTestScraper(t, "<html><body><p>Nothing here</p></body></html>", http.StatusOK)

	jobs, err := s.ScrapePage(context.Background(), "Acme", srv.URL)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestScrapePageServerError(t *testing.T) {
	s, srv := newTestScraper(t, "", http.StatusServiceUnavailable)

	_, err := s.ScrapePage(context.Background(), "Acme", srv.URL)
	assert.Error(t, err)
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in     string
		city   string
		state  string
		remote bool
	}{
		{"New York, NY", "New York", "NY", false},
		{"Austin", "Austin", "", false},
		{"Remote", "", "", true},
		{"Remote - US", "", "", true},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			city, state, remote := splitLocation(tt.in)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.state, state)
			assert.Equal(t, tt.remote, remote)
		})
	}
}
