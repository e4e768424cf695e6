package linkedinmail

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

var (
	reJobID  = regexp.MustCompile(`/jobs/view/(\d+)`)
	reSalary = regexp.MustCompile(`\$\s?\d[\d,]*(?:K|M)?\s*(?:-\s*\$\s?\d[\d,]*(?:K|M)?)?\s*/\s*(?:year|yr|hour|hr)`)
)

// ParseAlertHTML pulls job cards out of a LinkedIn job-alert email body.
// Multiple anchors usually point at the same job id (logo, title, CTA),
// so cards are merged by id and the best title wins.
func ParseAlertHTML(htmlBody string) ([]domain.RawPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	byID := map[string]*domain.RawPosting{}
	order := []string{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}
		if !strings.Contains(strings.ToLower(href), "linkedin.com") {
			return
		}

		// tracking wrappers encode the real URL, so unwrap before filtering
		jobURL := unwrapRedirect(href)
		if !strings.Contains(strings.ToLower(jobURL), "/jobs/view/") {
			return
		}
		id := jobID(jobURL)
		if id == "" {
			return
		}

		j, ok := byID[id]
		if !ok {
			j = &domain.RawPosting{
				Source:             domain.SourceLinkedIn,
				ExternalID:         id,
				URL:                jobURL,
				EasyApplyAvailable: false,
			}
			byID[id] = j
			order = append(order, id)
		}

		if t := stripBadges(cleanText(a.Text())); plausibleTitle(t) && len(t) > len(j.Title) {
			j.Title = t
		}

		card := a.Closest("table")
		if card.Length() == 0 {
			card = a.Closest("tr")
		}
		if card.Length() == 0 {
			card = a.Parent()
		}

		// Company · Location lives in a <p> on the card
		card.Find("p").Each(func(_ int, p *goquery.Selection) {
			t := cleanText(p.Text())
			if t == "" {
				return
			}
			if j.Company == "" && strings.Contains(t, " · ") {
				parts := strings.SplitN(t, " · ", 2)
				j.Company = strings.TrimSpace(parts[0])
				j.Location = strings.TrimSpace(parts[1])
			}
		})

		blob := cleanText(card.Text())
		if j.Salary == "" {
			if m := reSalary.FindString(blob); m != "" {
				j.Salary = strings.TrimSpace(m)
			}
		}
		if strings.Contains(strings.ToLower(blob), "easy apply") {
			j.EasyApplyAvailable = true
		}
	})

	out := make([]domain.RawPosting, 0, len(byID))
	for _, id := range order {
		j := byID[id]
		if j.Title == "" {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

// IsJobAlert reports whether a message looks like a LinkedIn job alert.
func IsJobAlert(from, subject string) bool {
	if strings.Contains(strings.ToLower(from), "jobalerts-noreply") {
		return true
	}
	s := strings.ToLower(subject)
	return strings.Contains(s, "job alert") ||
		(strings.Contains(s, "linkedin") && strings.Contains(s, "job"))
}

func jobID(jobURL string) string {
	if m := reJobID.FindStringSubmatch(jobURL); len(m) == 2 {
		return m[1]
	}
	return ""
}

// unwrapRedirect unpacks tracking wrappers carrying the real URL in a
// url= query param.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if raw := u.Query().Get("url"); raw != "" {
		if uu, err := url.Parse(raw); err == nil && uu.Host != "" {
			return uu.String()
		}
	}
	return href
}

var titleBadges = []string{"Actively recruiting", "Easy Apply", "Promoted"}

func stripBadges(s string) string {
	for _, b := range titleBadges {
		s = strings.ReplaceAll(s, b, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

func plausibleTitle(s string) bool {
	if len(s) < 4 || len(s) > 140 {
		return false
	}
	l := strings.ToLower(s)
	for _, bad := range []string{"view job", "see job", "unsubscribe", "sign in", "http://", "https://"} {
		if strings.Contains(l, bad) {
			return false
		}
	}
	return !strings.ContainsAny(s, "$€£")
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
