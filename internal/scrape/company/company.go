package company

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/util"
)

// Scraper walks configured careers pages. Each page declares its format:
// "json" for an API endpoint returning a jobs array, "html" for a page
// scanned with generic posting selectors.
type Scraper struct {
	pages []config.CompanyPage
	hc    *http.Client
	hl    *util.HostLimiter
}

func New(pages []config.CompanyPage, hl *util.HostLimiter) *Scraper {
	return &Scraper{
		pages: pages,
		hc:    &http.Client{Timeout: 20 * time.Second},
		hl:    hl,
	}
}

func (s *Scraper) Name() string { return "company" }

func (s *Scraper) Fetch(ctx context.Context) (scrape.Result, error) {
	res := scrape.Result{Source: domain.SourceCompanySite}
	for _, page := range s.pages {
		raw, err := s.fetchPage(ctx, page)
		if err != nil {
			// one broken careers page should not sink the run
			log.Printf("[company] %s: %v", page.Name, err)
			continue
		}
		res.Raw = append(res.Raw, raw...)
	}
	return res, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page config.CompanyPage) ([]domain.RawPosting, error) {
	if s.hl != nil {
		if err := s.hl.WaitURL(ctx, page.URL); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, page.URL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get careers page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("careers page status %d", resp.StatusCode)
	}

	switch strings.ToLower(page.Format) {
	case "json":
		return parseJSON(page, resp.Body)
	default:
		return parseHTML(page, resp.Body)
	}
}

type jsonJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ApplyURL    string `json:"apply_url"`
}

type jsonFeed struct {
	Jobs []jsonJob `json:"jobs"`
}

func parseJSON(page config.CompanyPage, body io.Reader) ([]domain.RawPosting, error) {
	data, err := io.ReadAll(io.LimitReader(body, 10<<20))
	if err != nil {
		return nil, err
	}

	var feed jsonFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		// some endpoints return the bare array
		var jobs []jsonJob
		if err2 := json.Unmarshal(data, &jobs); err2 != nil {
			return nil, fmt.Errorf("decode jobs json: %w", err)
		}
		feed.Jobs = jobs
	}

	out := make([]domain.RawPosting, 0, len(feed.Jobs))
	for _, j := range feed.Jobs {
		if strings.TrimSpace(j.Title) == "" {
			continue
		}
		out = append(out, domain.RawPosting{
			Source:      domain.SourceCompanySite,
			ExternalID:  j.ID,
			Title:       j.Title,
			Company:     page.Name,
			Location:    j.Location,
			Salary:      j.Salary,
			JobType:     j.Type,
			Description: j.Description,
			URL:         firstNonEmpty(j.URL, page.URL),
			ApplyURL:    j.ApplyURL,
		})
	}
	return out, nil
}

// postingSelectors covers the markup most hand-rolled careers pages use.
var postingSelectors = []string{
	".job", ".position", ".opening", ".career-item", "li.job-listing",
}

func parseHTML(page config.CompanyPage, body io.Reader) ([]domain.RawPosting, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse careers html: %w", err)
	}

	var out []domain.RawPosting
	for _, sel := range postingSelectors {
		doc.Find(sel).Each(func(_ int, card *goquery.Selection) {
			title := cleanText(card.Find("h2, h3, .title, .job-title").First().Text())
			if title == "" {
				title = cleanText(card.Find("a").First().Text())
			}
			if title == "" {
				return
			}

			raw := domain.RawPosting{
				Source:      domain.SourceCompanySite,
				Title:       title,
				Company:     page.Name,
				Location:    cleanText(card.Find(".location, .job-location").First().Text()),
				Description: cleanText(card.Text()),
				URL:         page.URL,
			}
			if href, ok := card.Find("a[href]").First().Attr("href"); ok {
				raw.URL = absoluteURL(page.URL, href)
				raw.ApplyURL = raw.URL
			}
			out = append(out, raw)
		})
		if len(out) > 0 {
			break // first selector that matches wins, avoids double counting
		}
	}
	return out, nil
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	// keep scheme://host only when the careers URL has a path
	if i := strings.Index(base, "://"); i >= 0 {
		if j := strings.Index(base[i+3:], "/"); j >= 0 {
			base = base[:i+3+j]
		}
	}
	return base + href
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
