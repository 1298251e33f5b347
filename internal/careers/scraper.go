package careers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar/internal/errors"
	"jobradar/internal/models"
	"jobradar/internal/telemetry"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/ingestion/careers")

// Scraper pulls postings from static-HTML company careers pages. It targets
// the common listing markup: anchors or rows carrying a job title plus an
// optional location span.
type Scraper struct {
	client *http.Client
	logger *zap.Logger
}

func NewScraper(logger *zap.Logger, timeout time.Duration) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Selectors tried in order against a careers page. Each maps a repeated
// listing element to the title/location/link inside it.
var listingSelectors = []struct {
	row      string
	title    string
	location string
}{
	{row: "li.job, li.posting, div.job, div.posting", title: "a, h3, h4", location: ".location, .job-location, .posting-categories .location"},
	{row: "tr.job-row, tr[data-job-id]", title: "td.title a, td a", location: "td.location"},
	{row: "a.job-link, a[href*='/jobs/'], a[href*='/careers/']", title: "", location: ""},
}

// ScrapePage fetches one careers page and extracts postings. The company
// name is attributed by the caller since listing markup rarely repeats it.
func (s *Scraper) ScrapePage(ctx context.Context, company, pageURL string) ([]models.Job, error) {
	ctx, span := tracer.Start(ctx, "ScrapePage")
	defer span.End()
	span.SetAttributes(
		telemetry.String("careers.company", company),
		telemetry.String("http.url", pageURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating request", err)
	}
	req.Header.Set("User-Agent", browser.Random())

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("failed to fetch careers page",
			zap.String("url", pageURL),
			zap.Error(err))
		return nil, errors.Unavailable("fetching careers page", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.RateLimit("careers page rate limited", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("parsing careers page", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.InvalidInput("parsing page url", err)
	}

	jobs := s.extract(doc, base, company)
	s.logger.Info("scraped careers page",
		zap.String("company", company),
		zap.String("url", pageURL),
		zap.Int("count", len(jobs)))
	span.SetAttributes(telemetry.Int("careers.count", len(jobs)))

	return jobs, nil
}

func (s *Scraper) extract(doc *goquery.Document, base *url.URL, company string) []models.Job {
	now := time.Now()
	var jobs []models.Job
	seen := make(map[string]bool)

	for _, sel := range listingSelectors {
		doc.Find(sel.row).Each(func(_ int, row *goquery.Selection) {
			title, href := titleAndLink(row, sel.title)
			if title == "" || href == "" {
				return
			}

			link, err := base.Parse(href)
			if err != nil {
				return
			}

			city, state, remote := splitLocation(locationText(row, sel.location))

			job := models.Job{
				Company:   company,
				Title:     title,
				City:      city,
				State:     state,
				ApplyURL:  link.String(),
				Remote:    remote,
				Source:    "careers",
				FirstSeen: now,
				LastSeen:  now,
			}
			job.RefreshID()

			if !seen[job.ID] {
				seen[job.ID] = true
				jobs = append(jobs, job)
			}
		})
		if len(jobs) > 0 {
			break
		}
	}

	return jobs
}

func titleAndLink(row *goquery.Selection, titleSel string) (string, string) {
	if titleSel == "" {
		// The row itself is the anchor.
		href, _ := row.Attr("href")
		return clean(row.Text()), href
	}

	node := row.Find(titleSel).First()
	title := clean(node.Text())

	href, ok := node.Attr("href")
	if !ok {
		href, _ = row.Find("a").First().Attr("href")
	}
	return title, href
}

func locationText(row *goquery.Selection, locSel string) string {
	if locSel == "" {
		return ""
	}
	return clean(row.Find(locSel).First().Text())
}

// splitLocation parses "San Francisco, CA" style strings; anything mentioning
// remote sets the remote flag instead of a place.
func splitLocation(loc string) (city, state string, remote bool) {
	if loc == "" {
		return "", "", false
	}
	if strings.Contains(strings.ToLower(loc), "remote") {
		return "", "", true
	}

	parts := strings.SplitN(loc, ",", 2)
	city = clean(parts[0])
	if len(parts) == 2 {
		state = clean(parts[1])
	}
	return city, state, false
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
