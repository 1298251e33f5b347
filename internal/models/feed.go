package models

import (
	"encoding/json"
	"strings"
	"time"
)

// FeedJob is the wire shape of the upstream transformed-jobs feed.
type FeedJob struct {
	EmployerName   string `json:"employer_name"`
	JobTitle       string `json:"job_title"`
	JobCity        string `json:"job_city"`
	JobState       string `json:"job_state"`
	JobApplyLink   string `json:"job_apply_link"`
	JobPostedAt    string `json:"job_posted_at"`
	JobDescription string `json:"job_description"`
	JobIsRemote    bool   `json:"job_is_remote"`
}

func (f FeedJob) MarshalBinary() ([]byte, error) {
	return json.Marshal(f)
}

func (f *FeedJob) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, f)
}

// ToJob converts a feed record into a board job. PostedAt is left zero here;
// the caller resolves the feed's relative age string against its clock.
func (f *FeedJob) ToJob(now time.Time) *Job {
	raw, _ := json.Marshal(f)

	job := &Job{
		Company:   strings.TrimSpace(f.EmployerName),
		Title:     strings.TrimSpace(f.JobTitle),
		City:      strings.TrimSpace(f.JobCity),
		State:     strings.TrimSpace(f.JobState),
		ApplyURL:  strings.TrimSpace(f.JobApplyLink),
		Remote:    f.JobIsRemote,
		Source:    "feed",
		FirstSeen: now,
		LastSeen:  now,
		RawData:   string(raw),
	}
	job.RefreshID()
	return job
}
