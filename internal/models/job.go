package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Experience levels as displayed on the board.
const (
	LevelEntry        = "Entry"
	LevelMid          = "Mid-Level"
	LevelSenior       = "Senior"
	LevelNotSpecified = "Not Specified"
)

type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ApplyURL  string    `json:"apply_url"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Tier      Tier      `json:"tier"`
	Remote    bool      `json:"remote"`
	Source    string    `json:"source"`
	PostedAt  time.Time `json:"posted_at"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	RawData   string    `json:"raw_data"`
}

func (j Job) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}

func (j *Job) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, j)
}

// Location renders the board's location column: "City, ST", a bare city or
// state, "Remote" for remote-only postings, otherwise "Unknown".
func (j Job) Location() string {
	switch {
	case j.City != "" && j.State != "":
		return fmt.Sprintf("%s, %s", j.City, j.State)
	case j.City != "":
		return j.City
	case j.State != "":
		return j.State
	case j.Remote:
		return "Remote"
	}
	return "Unknown"
}

// Age is the elapsed time since the posting was published.
func (j Job) Age(now time.Time) time.Duration {
	posted := j.PostedAt
	if posted.IsZero() {
		posted = j.FirstSeen
	}
	return now.Sub(posted)
}

var whitespace = regexp.MustCompile(`\s+`)

// Normalize collapses runs of whitespace and lowercases, so the same posting
// hashes to the same identity regardless of feed formatting noise.
func Normalize(s string) string {
	return strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(s), " "))
}

var idNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// StableID derives the posting identity from the fields that survive feed
// re-exports. Two postings with the same normalized tuple are the same job.
func StableID(company, title, city, state, applyURL string) string {
	key := strings.Join([]string{
		Normalize(company),
		Normalize(title),
		Normalize(city),
		Normalize(state),
		Normalize(applyURL),
	}, "||")
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}

// RefreshID recomputes and sets the job's stable identity.
func (j *Job) RefreshID() {
	j.ID = StableID(j.Company, j.Title, j.City, j.State, j.ApplyURL)
}
