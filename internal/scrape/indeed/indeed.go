package indeed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/scrape/util"
)

type Config struct {
	BaseURL   string // default https://www.indeed.com
	Keywords  []string
	Locations []string
	Pages     int // result pages per keyword/location pair
}

type Scraper struct {
	cfg Config
	hc  *http.Client
	hl  *util.HostLimiter
	now func() time.Time
}

func New(cfg Config, hl *util.HostLimiter) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.indeed.com"
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 1
	}
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: 20 * time.Second},
		hl:  hl,
		now: time.Now,
	}
}

func (s *Scraper) Name() string { return "indeed" }

func (s *Scraper) Fetch(ctx context.Context) (scrape.Result, error) {
	res := scrape.Result{Source: domain.SourceIndeed}

	locations := s.cfg.Locations
	if len(locations) == 0 {
		locations = []string{""}
	}

	for _, kw := range s.cfg.Keywords {
		for _, loc := range locations {
			for page := 0; page < s.cfg.Pages; page++ {
				raw, err := s.fetchPage(ctx, kw, loc, page*10)
				if err != nil {
					// one bad search page should not sink the run
					log.Printf("[indeed] %q in %q page %d: %v", kw, loc, page, err)
					continue
				}
				res.Raw = append(res.Raw, raw...)
				if len(raw) == 0 {
					break // no more results for this pair
				}
			}
		}
	}
	return res, nil
}

func (s *Scraper) fetchPage(ctx context.Context, keyword, location string, start int) ([]domain.RawPosting, error) {
	q := url.Values{}
	q.Set("q", keyword)
	if location != "" {
		q.Set("l", location)
	}
	if start > 0 {
		q.Set("start", strconv.Itoa(start))
	}
	searchURL := s.cfg.BaseURL + "/jobs?" + q.Encode()

	if s.hl != nil {
		if err := s.hl.WaitURL(ctx, searchURL); err != nil {
			return nil, err
		}
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("indeed get search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("indeed search status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("indeed parse html: %w", err)
	}
	return s.parseCards(doc), nil
}

func (s *Scraper) parseCards(doc *goquery.Document) []domain.RawPosting {
	var out []domain.RawPosting
	seen := map[string]bool{}

	doc.Find("div.job_seen_beacon, a.tapItem").Each(func(_ int, card *goquery.Selection) {
		jk := cardJobKey(card)
		if jk != "" && seen[jk] {
			return
		}
		if jk != "" {
			seen[jk] = true
		}

		title := cleanText(card.Find("h2.jobTitle span").First().Text())
		if title == "" {
			title = cleanText(card.Find("h2.jobTitle").First().Text())
		}
		company := cleanText(card.Find("[data-testid='company-name'], span.companyName").First().Text())
		if title == "" || company == "" {
			return
		}

		raw := domain.RawPosting{
			Source:     domain.SourceIndeed,
			ExternalID: jk,
			Title:      title,
			Company:    company,
			Location:   cleanText(card.Find("[data-testid='text-location'], div.companyLocation").First().Text()),
			Salary:     cleanText(card.Find("[data-testid='attribute_snippet_testid'], .salary-snippet-container").First().Text()),
			Description: cleanText(card.Find("[data-testid='jobsnippet_footer'], .job-snippet").First().Text()),
		}

		if jk != "" {
			raw.URL = s.cfg.BaseURL + "/viewjob?jk=" + jk
		} else if href, ok := card.Find("a[href]").First().Attr("href"); ok {
			raw.URL = absoluteURL(s.cfg.BaseURL, href)
		}

		cardText := strings.ToLower(card.Text())
		raw.EasyApplyAvailable = strings.Contains(cardText, "easily apply") ||
			strings.Contains(cardText, "easy apply")

		if t := postedAt(cardText, s.now()); t != nil {
			raw.PostedAt = t
		}

		out = append(out, raw)
	})
	return out
}

func cardJobKey(card *goquery.Selection) string {
	if jk, ok := card.Attr("data-jk"); ok && jk != "" {
		return jk
	}
	if jk, ok := card.Find("[data-jk]").First().Attr("data-jk"); ok {
		return jk
	}
	// fall back to jk= in the first job link
	if href, ok := card.Find("a[href*='jk=']").First().Attr("href"); ok {
		if u, err := url.Parse(href); err == nil {
			return u.Query().Get("jk")
		}
	}
	return ""
}

var reDaysAgo = regexp.MustCompile(`(\d+)\s*day`)

// postedAt decodes Indeed's relative age strings ("Just posted",
// "Today", "3 days ago", "30+ days ago") against the scrape time.
func postedAt(cardText string, now time.Time) *time.Time {
	switch {
	case strings.Contains(cardText, "just posted"), strings.Contains(cardText, "today"):
		return &now
	}
	m := reDaysAgo.FindStringSubmatch(cardText)
	if m == nil {
		return nil
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	t := now.AddDate(0, 0, -days)
	return &t
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
