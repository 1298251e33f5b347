package board

import (
	"sort"
	"time"

	"jobradar/internal/models"
)

// Stats is the summary block at the top of the board.
type Stats struct {
	TotalActive   int
	TotalArchived int
	Companies     int
	ByTier        []TierCount
	ByCategory    []CategoryCount
	NewestPosting time.Time
}

type TierCount struct {
	Tier    models.Tier
	Count   int
	Percent float64
}

type CategoryCount struct {
	Category string
	Count    int
	Percent  float64
}

// Split divides postings into active and archived by age against now.
func Split(jobs []models.Job, archiveAfter time.Duration, now time.Time) (active, archived []models.Job) {
	for _, j := range jobs {
		if j.Age(now) > archiveAfter {
			archived = append(archived, j)
		} else {
			active = append(active, j)
		}
	}
	return active, archived
}

// Compute aggregates the summary statistics over the active set.
func Compute(active, archived []models.Job) Stats {
	s := Stats{
		TotalActive:   len(active),
		TotalArchived: len(archived),
	}

	companies := make(map[string]bool)
	tiers := make(map[models.Tier]int)
	categories := make(map[string]int)

	for _, j := range active {
		companies[models.Normalize(j.Company)] = true
		tiers[j.Tier]++
		categories[j.Category]++
		if j.PostedAt.After(s.NewestPosting) {
			s.NewestPosting = j.PostedAt
		}
	}
	s.Companies = len(companies)

	for tier, count := range tiers {
		s.ByTier = append(s.ByTier, TierCount{
			Tier:    tier,
			Count:   count,
			Percent: percent(count, s.TotalActive),
		})
	}
	sort.Slice(s.ByTier, func(i, k int) bool {
		return s.ByTier[i].Tier.Rank() < s.ByTier[k].Tier.Rank()
	})

	for category, count := range categories {
		s.ByCategory = append(s.ByCategory, CategoryCount{
			Category: category,
			Count:    count,
			Percent:  percent(count, s.TotalActive),
		})
	}
	sort.Slice(s.ByCategory, func(i, k int) bool {
		if s.ByCategory[i].Count != s.ByCategory[k].Count {
			return s.ByCategory[i].Count > s.ByCategory[k].Count
		}
		return s.ByCategory[i].Category < s.ByCategory[k].Category
	})

	return s
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// SortForBoard orders postings the way the board lists them: tier rank,
// company, newest first.
func SortForBoard(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		a, b := jobs[i], jobs[k]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() < b.Tier.Rank()
		}
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.PostedAt.After(b.PostedAt)
	})
}
