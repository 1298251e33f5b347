package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobradar/internal/models"
)

var (
	agePattern      = regexp.MustCompile(`(?i)^\s*(\d+)\s*(m|min|mins|minute|minutes|h|hr|hrs|hour|hours|d|day|days|w|wk|wks|week|weeks|mo|month|months)\s*(ago)?\s*$`)
	justPosted      = regexp.MustCompile(`(?i)^(just posted|today|new)$`)
	yesterday       = regexp.MustCompile(`(?i)^yesterday$`)
	remotePattern   = regexp.MustCompile(`(?i)\b(remote|wfh|work[- ]from[- ]home)\b`)
	newGradPattern  = regexp.MustCompile(`(?i)\b(new grad|entry[- ]level|graduate|university grad|early career|associate)\b`)
	seniorPattern   = regexp.MustCompile(`(?i)\b(senior|sr\.?|staff|principal|lead)\b`)
	midLevelPattern = regexp.MustCompile(`(?i)\b(mid[- ]level|intermediate|ii|2)\b`)
)

// Category keyword tables, checked in order; first hit wins.
var categoryRules = []struct {
	name     string
	keywords []string
}{
	{"Data Science", []string{"data scientist", "data science", "machine learning", "applied scientist", "research scientist"}},
	{"Data Analytics", []string{"data analyst", "analytics", "business intelligence", "bi analyst", "reporting analyst", "insights analyst", "business analyst", "product analyst"}},
	{"Data Engineering", []string{"data engineer", "etl", "data platform"}},
	{"Software Engineering", []string{"software engineer", "developer", "swe", "backend", "frontend", "full stack"}},
	{"Quantitative", []string{"quantitative", "quant "}},
}

// ParseJob turns a raw NATS payload back into a Job and fills in the fields
// ingestion leaves blank: posted-at resolved from the feed's age string,
// level, category, tier and remote detection.
func ParseJob(rawData []byte, now time.Time) (*models.Job, error) {
	var job models.Job
	if err := json.Unmarshal(rawData, &job); err != nil {
		return nil, err
	}

	if job.ID == "" {
		job.RefreshID()
	}
	if job.FirstSeen.IsZero() {
		job.FirstSeen = now
	}
	job.LastSeen = now

	if job.PostedAt.IsZero() {
		job.PostedAt = resolvePostedAt(job.RawData, now, job.FirstSeen)
	}

	if !job.Remote && remotePattern.MatchString(job.Title) {
		job.Remote = true
	}

	if job.Level == "" {
		job.Level = ExtractLevel(job.Title)
	}
	if job.Category == "" {
		job.Category = Categorize(job.Title)
	}
	if job.Tier == "" {
		job.Tier = models.ClassifyTier(job.Company)
	}

	return &job, nil
}

// resolvePostedAt digs the feed's age column out of the raw record. Feeds
// that never carried one fall back to first-seen.
func resolvePostedAt(rawData string, now, firstSeen time.Time) time.Time {
	if rawData == "" {
		return firstSeen
	}

	var raw struct {
		JobPostedAt string `json:"job_posted_at"`
	}
	if err := json.Unmarshal([]byte(rawData), &raw); err != nil || raw.JobPostedAt == "" {
		return firstSeen
	}

	if t, ok := ParseAge(raw.JobPostedAt, now); ok {
		return t
	}
	return firstSeen
}

// ParseAge resolves a display-age string ("3h", "5d ago", "2w", "Just
// posted") against now. The second return is false when the string is not an
// age the board vocabulary knows.
func ParseAge(age string, now time.Time) (time.Time, bool) {
	age = strings.TrimSpace(age)
	if age == "" {
		return time.Time{}, false
	}

	if justPosted.MatchString(age) {
		return now, true
	}
	if yesterday.MatchString(age) {
		return now.Add(-24 * time.Hour), true
	}

	m := agePattern.FindStringSubmatch(age)
	if m == nil {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	var unit time.Duration
	switch strings.ToLower(m[2])[0] {
	case 'm':
		if strings.HasPrefix(strings.ToLower(m[2]), "mo") {
			unit = 30 * 24 * time.Hour
		} else {
			unit = time.Minute
		}
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	}

	return now.Add(-time.Duration(n) * unit), true
}

// FormatAge renders an age for the board's Posted column: minutes and hours
// under a day, days under a week, weeks beyond.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d.Hours()/24)) + "d"
	}
	return strconv.Itoa(int(d.Hours()/(24*7))) + "w"
}

// ExtractLevel reads the seniority out of a title. Entry-level markers win
// over senior markers since "Senior Analyst (New Grad Program)" style titles
// exist in the wild.
func ExtractLevel(title string) string {
	switch {
	case newGradPattern.MatchString(title):
		return models.LevelEntry
	case seniorPattern.MatchString(title):
		return models.LevelSenior
	case midLevelPattern.MatchString(title):
		return models.LevelMid
	}
	return models.LevelNotSpecified
}

// Categorize maps a title onto its board category.
func Categorize(title string) string {
	t := models.Normalize(title)
	for _, rule := range categoryRules {
		for _, k := range rule.keywords {
			if strings.Contains(t, k) {
				return rule.name
			}
		}
	}
	return "Other"
}
