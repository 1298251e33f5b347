package board

import (
	"fmt"
	"strings"
	"time"

	"jobradar/internal/models"
	"jobradar/internal/parser"
)

// Markdown renders the job board document. Output is deterministic for a
// given job set and clock so regenerated boards diff cleanly.
type Markdown struct {
	Title        string
	ArchiveAfter time.Duration
}

func (m Markdown) Render(jobs []models.Job, now time.Time) string {
	title := m.Title
	if title == "" {
		title = "Job Board"
	}

	active, archived := Split(jobs, m.ArchiveAfter, now)
	stats := Compute(active, archived)
	SortForBoard(active)
	SortForBoard(archived)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Last updated: %s\n\n", now.UTC().Format("2006-01-02 15:04 UTC"))

	m.renderStats(&b, stats)
	m.renderSections(&b, active, stats.ByCategory, now)
	m.renderArchive(&b, archived, now)

	return b.String()
}

func (m Markdown) renderStats(b *strings.Builder, stats Stats) {
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- **Active postings:** %d across %d companies\n", stats.TotalActive, stats.Companies)
	fmt.Fprintf(b, "- **Archived postings:** %d\n", stats.TotalArchived)
	if !stats.NewestPosting.IsZero() {
		fmt.Fprintf(b, "- **Newest posting:** %s\n", stats.NewestPosting.UTC().Format("2006-01-02"))
	}
	b.WriteString("\n")

	if len(stats.ByTier) > 0 {
		b.WriteString("| Tier | Postings | Share |\n")
		b.WriteString("|------|----------|-------|\n")
		for _, tc := range stats.ByTier {
			fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", tc.Tier, tc.Count, tc.Percent)
		}
		b.WriteString("\n")
	}

	if len(stats.ByCategory) > 0 {
		b.WriteString("| Category | Postings | Share |\n")
		b.WriteString("|----------|----------|-------|\n")
		for _, cc := range stats.ByCategory {
			fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", cc.Category, cc.Count, cc.Percent)
		}
		b.WriteString("\n")
	}
}

func (m Markdown) renderSections(b *strings.Builder, active []models.Job, byCategory []CategoryCount, now time.Time) {
	if len(active) == 0 {
		b.WriteString("_No active postings right now. Check back soon!_\n\n")
		return
	}

	// One section per category, largest first. Rows inside keep the
	// SortForBoard order: tier rank, then company, then newest.
	for _, cc := range byCategory {
		fmt.Fprintf(b, "## %s\n\n", cc.Category)
		writeTableHeader(b)
		for _, j := range active {
			if j.Category == cc.Category {
				writeRow(b, j, now)
			}
		}
		b.WriteString("\n")
	}
}

func (m Markdown) renderArchive(b *strings.Builder, archived []models.Job, now time.Time) {
	if len(archived) == 0 {
		return
	}

	b.WriteString("<details>\n")
	fmt.Fprintf(b, "<summary>Archived postings (older than %s)</summary>\n\n", parser.FormatAge(m.ArchiveAfter))
	writeTableHeader(b)
	for _, j := range archived {
		writeRow(b, j, now)
	}
	b.WriteString("\n</details>\n")
}

func writeTableHeader(b *strings.Builder) {
	b.WriteString("| Company | Role | Location | Posted | Apply |\n")
	b.WriteString("|---------|------|----------|--------|-------|\n")
}

func writeRow(b *strings.Builder, j models.Job, now time.Time) {
	apply := "—"
	if j.ApplyURL != "" {
		apply = fmt.Sprintf("[Apply](%s)", j.ApplyURL)
	}
	fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
		escapeCell(j.Company),
		escapeCell(j.Title),
		escapeCell(j.Location()),
		parser.FormatAge(j.Age(now)),
		apply)
}

// escapeCell keeps pipes in titles from breaking the table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
