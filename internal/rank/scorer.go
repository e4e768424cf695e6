// Package rank computes the bounded priority score for a posting.
package rank

import (
	"strings"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// MaxScore caps every priority score; contributions past it are discarded.
const MaxScore = 50

// RecencyWindow is how fresh a posting must be for the recency bonus.
const RecencyWindow = 48 * time.Hour

type Scorer struct {
	Cfg config.Config
}

// Score is additive over a fixed attribute set, weighted by the source's
// profile, clamped to [0, MaxScore]. It is pure and total: absent optional
// fields contribute zero, nothing panics, nothing is random.
func (s Scorer) Score(p *domain.Posting) int {
	prof := s.Cfg.ProfileFor(string(p.Source))

	score := 0

	switch companyTier(p.Company, s.Cfg.Scoring.Tier1Companies, s.Cfg.Scoring.Tier2Companies) {
	case 1:
		score += prof.Tier1Bonus
	case 2:
		score += prof.Tier2Bonus
	}

	score += prof.KeywordWeight * s.countedKeywords(p.Keywords, prof)

	if p.RemoteFriendly {
		score += prof.RemoteBonus
	}
	if strings.TrimSpace(p.Salary) != "" {
		score += prof.SalaryBonus
	}
	if p.EasyApplyAvailable {
		score += prof.EasyApplyBonus
	}
	if p.PostedAt != nil && !p.PostedAt.IsZero() && !p.ScrapedAt.IsZero() {
		if age := p.ScrapedAt.Sub(*p.PostedAt); age >= 0 && age <= RecencyWindow {
			score += prof.RecencyBonus
		}
	}

	if score > MaxScore {
		return MaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func (s Scorer) countedKeywords(keywords []string, prof config.Profile) int {
	if !prof.PreferredOnly {
		return len(keywords)
	}
	n := 0
	for _, k := range keywords {
		for _, pref := range s.Cfg.Scoring.PreferredKeywords {
			if strings.EqualFold(k, pref) {
				n++
				break
			}
		}
	}
	return n
}

// companyTier matches tier lists by substring so "Google LLC" still hits
// "Google". Tier 1 wins when a company somehow appears in both.
func companyTier(company string, tier1, tier2 []string) int {
	c := strings.ToLower(strings.TrimSpace(company))
	if c == "" {
		return 0
	}
	for _, t := range tier1 {
		if t != "" && strings.Contains(c, strings.ToLower(t)) {
			return 1
		}
	}
	for _, t := range tier2 {
		if t != "" && strings.Contains(c, strings.ToLower(t)) {
			return 2
		}
	}
	return 0
}
