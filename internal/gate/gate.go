// Package gate decides whether a posting qualifies for automated application
// and how heavy its application process looks.
package gate

import (
	"regexp"
	"strings"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/extract"
)

// Textual signals that an application needs more than a one-click flow.
var complexIndicators = []string{
	"portfolio", "cover letter required", "writing sample", "references",
}

var mediumIndicators = []string{
	"resume", "cv", "application",
}

var complexityComplex = []string{
	"portfolio", "cover letter", "writing sample",
}

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Evaluate fills the posting's application metadata: method, complexity, and
// the auto-apply eligibility flag. Score and keywords must already be set.
func Evaluate(cfg config.Config, p *domain.Posting) {
	p.ApplicationMethod = method(p)
	p.ApplicationComplexity = complexity(p)
	p.AutoApplyEligible = eligible(cfg, p)
}

// eligible requires the one-click flow, a score at or above the configured
// floor, no complex-application signals, and at least one keyword overlapping
// the operator's target list. Lowering the score below the floor can only
// flip the result from true to false, never the reverse.
func eligible(cfg config.Config, p *domain.Posting) bool {
	if !p.EasyApplyAvailable {
		return false
	}
	if p.PriorityScore < cfg.Gate.MinAutoApplyScore {
		return false
	}

	desc := strings.ToLower(p.Description)
	for _, ind := range complexIndicators {
		if strings.Contains(desc, ind) {
			return false
		}
	}

	for _, target := range cfg.Scraping.TargetKeywords {
		if extract.Has(p.Keywords, target) {
			return true
		}
	}
	return false
}

func complexity(p *domain.Posting) domain.ApplicationComplexity {
	if p.EasyApplyAvailable {
		return domain.ComplexitySimple
	}

	desc := strings.ToLower(p.Description)
	for _, w := range complexityComplex {
		if strings.Contains(desc, w) {
			return domain.ComplexityComplex
		}
	}
	for _, w := range mediumIndicators {
		if strings.Contains(desc, w) {
			return domain.ComplexityMedium
		}
	}
	return domain.ComplexityUnknown
}

func method(p *domain.Posting) domain.ApplicationMethod {
	switch {
	case p.EasyApplyAvailable:
		return domain.MethodEasyApply
	case strings.TrimSpace(p.ApplyURL) != "":
		return domain.MethodExternalWebsite
	case ContactEmail(p.Description) != "":
		return domain.MethodEmailApplication
	default:
		return domain.MethodManualResearch
	}
}

// ContactEmail returns the first email address mentioned in the text, or "".
func ContactEmail(text string) string {
	return emailRe.FindString(text)
}
