package filter

import (
	"strings"
	"time"

	"jobradar/internal/models"
)

// Title keywords a posting must contain at least one of, compared against
// the whitespace-normalized lowercase title.
var includeTitleKeywords = []string{
	"data analyst",
	"business analyst",
	"product analyst",
	"analytics",
	"bi analyst",
	"business intelligence",
	"reporting analyst",
	"insights analyst",
	"data science",
	"data scientist",
	"science",
}

// Titles matching any of these are rejected outright, even when an include
// keyword also matches ("Data Science Platform Engineer" is not an analyst
// role).
var excludeTitleKeywords = []string{
	"software engineer",
	"software development",
	"developer",
	"full stack",
	"frontend",
	"back end",
	"backend",
	"devops",
	"site reliability",
	"sre",
	"platform engineer",
	"ml engineer",
	"machine learning engineer",
	"data engineer",
	"cloud engineer",
	"security engineer",
	"product manager",
	"program manager",
	"director",
	"sr ",
	"senior ",
	"principal",
	"staff",
	"lead",
	"manager",
	"intern",
}

// Filter decides which postings enter the pipeline.
type Filter struct {
	include []string
	exclude []string
	horizon time.Duration
}

// New builds a Filter with the default analyst-role rules. A zero horizon
// disables the recency gate.
func New(horizon time.Duration) *Filter {
	return &Filter{
		include: includeTitleKeywords,
		exclude: excludeTitleKeywords,
		horizon: horizon,
	}
}

// NewWithRules builds a Filter with caller-supplied keyword lists.
func NewWithRules(include, exclude []string, horizon time.Duration) *Filter {
	return &Filter{include: include, exclude: exclude, horizon: horizon}
}

// Accept reports whether the posting passes the include/exclude title rules
// and, when the posting's age is known, the recency gate.
func (f *Filter) Accept(job *models.Job, now time.Time) bool {
	if !f.titleAccepted(job.Title) {
		return false
	}
	if f.horizon > 0 && !job.PostedAt.IsZero() && now.Sub(job.PostedAt) > f.horizon {
		return false
	}
	return true
}

func (f *Filter) titleAccepted(title string) bool {
	t := models.Normalize(title)

	matched := false
	for _, k := range f.include {
		if strings.Contains(t, k) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, k := range f.exclude {
		if strings.Contains(t, k) {
			return false
		}
	}
	return true
}
