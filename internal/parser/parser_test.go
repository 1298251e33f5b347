package parser

import (
	"encoding/json"
	"testing"
	"time"

	"jobradar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"3h", 3 * time.Hour, true},
		{"45m", 45 * time.Minute, true},
		{"5d", 5 * 24 * time.Hour, true},
		{"2w", 2 * 7 * 24 * time.Hour, true},
		{"1mo", 30 * 24 * time.Hour, true},
		{"3 days ago", 3 * 24 * time.Hour, true},
		{"2 weeks ago", 2 * 7 * 24 * time.Hour, true},
		{"Just posted", 0, true},
		{"today", 0, true},
		{"yesterday", 24 * time.Hour, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"soonish", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAge(tt.in, testNow)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, testNow.Add(-tt.want), got)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "now"},
		{45 * time.Minute, "45m"},
		{3 * time.Hour, "3h"},
		{26 * time.Hour, "1d"},
		{6 * 24 * time.Hour, "6d"},
		{7 * 24 * time.Hour, "1w"},
		{20 * 24 * time.Hour, "2w"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(tt.in))
		})
	}
}

func TestExtractLevel(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Data Analyst, New Grad", models.LevelEntry},
		{"Entry-Level Business Analyst", models.LevelEntry},
		{"Senior Data Scientist", models.LevelSenior},
		{"Staff Analytics Engineer", models.LevelSenior},
		{"Senior Analyst (New Grad Program)", models.LevelEntry},
		{"Data Analyst II", models.LevelMid},
		{"Data Analyst", models.LevelNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLevel(tt.title))
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Data Scientist, Growth", "Data Science"},
		{"Business Intelligence Analyst", "Data Analytics"},
		{"Product Analyst", "Data Analytics"},
		{"Data Engineer", "Data Engineering"},
		{"Software Engineer, Backend", "Software Engineering"},
		{"Quantitative Researcher", "Quantitative"},
		{"Chief of Staff", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.title))
		})
	}
}

func TestParseJobResolvesPostedAtFromRawAge(t *testing.T) {
	feed := models.FeedJob{
		EmployerName: "Google",
		JobTitle:     "Data Analyst, New Grad",
		JobCity:      "New York",
		JobState:     "NY",
		JobApplyLink: "https://careers.google.com/j/1",
		JobPostedAt:  "2d",
	}
	job := feed.ToJob(testNow.Add(-time.Hour))

	raw, err := json.Marshal(job)
	require.NoError(t, err)

	parsed, err := ParseJob(raw, testNow)
	require.NoError(t, err)

	assert.Equal(t, testNow.Add(-2*24*time.Hour), parsed.PostedAt)
	assert.Equal(t, models.LevelEntry, parsed.Level)
	assert.Equal(t, "Data Analytics", parsed.Category)
	assert.Equal(t, models.TierFAANG, parsed.Tier)
	assert.Equal(t, testNow, parsed.LastSeen)
	assert.Equal(t, job.ID, parsed.ID)
}

func TestParseJobUnparseableAgeFallsBackToFirstSeen(t *testing.T) {
	firstSeen := testNow.Add(-3 * time.Hour)
	feed := models.FeedJob{
		EmployerName: "Snowflake",
		JobTitle:     "Analytics Engineer",
		JobApplyLink: "https://careers.snowflake.com/j/9",
		JobPostedAt:  "N/A",
	}
	job := feed.ToJob(firstSeen)

	raw, err := json.Marshal(job)
	require.NoError(t, err)

	parsed, err := ParseJob(raw, testNow)
	require.NoError(t, err)

	assert.Equal(t, firstSeen, parsed.PostedAt)
}

func TestParseJobDetectsRemoteTitle(t *testing.T) {
	job := models.Job{
		Company:  "GitLab",
		Title:    "Data Analyst (Remote)",
		ApplyURL: "https://about.gitlab.com/jobs/1",
	}
	job.RefreshID()

	raw, err := json.Marshal(job)
	require.NoError(t, err)

	parsed, err := ParseJob(raw, testNow)
	require.NoError(t, err)
	assert.True(t, parsed.Remote)
}

func TestParseJobRejectsGarbage(t *testing.T) {
	_, err := ParseJob([]byte("not json"), testNow)
	assert.Error(t, err)
}
