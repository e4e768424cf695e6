package gate

import (
	"testing"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.ApplyDefaults()
	cfg.Scraping.TargetKeywords = []string{"AWS", "Docker"}
	return cfg
}

func eligiblePosting() *domain.Posting {
	return &domain.Posting{
		Source:             domain.SourceIndeed,
		Title:              "Data Engineer",
		Description:        "build pipelines with aws and docker",
		Keywords:           []string{"AWS", "Docker"},
		PriorityScore:      30,
		EasyApplyAvailable: true,
	}
}

func TestEvaluateEligible(t *testing.T) {
	cfg := testConfig()
	p := eligiblePosting()
	Evaluate(cfg, p)

	if !p.AutoApplyEligible {
		t.Error("expected eligible")
	}
	if p.ApplicationMethod != domain.MethodEasyApply {
		t.Errorf("method = %q, want easy apply", p.ApplicationMethod)
	}
	if p.ApplicationComplexity != domain.ComplexitySimple {
		t.Errorf("complexity = %q, want simple", p.ApplicationComplexity)
	}
}

func TestEvaluateNoEasyApply(t *testing.T) {
	cfg := testConfig()
	p := eligiblePosting()
	p.EasyApplyAvailable = false
	p.ApplyURL = "https://example.com/apply"
	Evaluate(cfg, p)

	if p.AutoApplyEligible {
		t.Error("must not be eligible without easy apply, regardless of score")
	}
	if p.ApplicationMethod != domain.MethodExternalWebsite {
		t.Errorf("method = %q, want external website", p.ApplicationMethod)
	}
}

func TestEligibilityMonotonicInScore(t *testing.T) {
	cfg := testConfig()

	wasEligible := false
	for score := 50; score >= 0; score-- {
		p := eligiblePosting()
		p.PriorityScore = score
		Evaluate(cfg, p)

		if p.AutoApplyEligible && score < cfg.Gate.MinAutoApplyScore {
			t.Fatalf("eligible at score %d below threshold %d", score, cfg.Gate.MinAutoApplyScore)
		}
		if !p.AutoApplyEligible && score >= cfg.Gate.MinAutoApplyScore {
			t.Fatalf("ineligible at score %d above threshold", score)
		}
		if p.AutoApplyEligible && !wasEligible && score != 50 {
			t.Fatalf("eligibility flipped false->true while lowering score at %d", score)
		}
		wasEligible = p.AutoApplyEligible
	}
}

func TestComplexIndicatorsBlockEligibility(t *testing.T) {
	cfg := testConfig()
	p := eligiblePosting()
	p.Description += " please include a portfolio"
	Evaluate(cfg, p)

	if p.AutoApplyEligible {
		t.Error("portfolio requirement must block auto-apply")
	}
}

func TestNoTargetKeywordOverlap(t *testing.T) {
	cfg := testConfig()
	cfg.Scraping.TargetKeywords = []string{"Kubernetes"}
	p := eligiblePosting()
	Evaluate(cfg, p)

	if p.AutoApplyEligible {
		t.Error("no target keyword overlap must block auto-apply")
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Posting
		want domain.ApplicationComplexity
	}{
		{"easy apply is simple", domain.Posting{EasyApplyAvailable: true, Description: "portfolio needed"}, domain.ComplexitySimple},
		{"portfolio is complex", domain.Posting{Description: "send your portfolio"}, domain.ComplexityComplex},
		{"cover letter is complex", domain.Posting{Description: "cover letter appreciated"}, domain.ComplexityComplex},
		{"resume is medium", domain.Posting{Description: "submit resume via our page"}, domain.ComplexityMedium},
		{"nothing known", domain.Posting{Description: "great team"}, domain.ComplexityUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complexity(&tt.p); got != tt.want {
				t.Errorf("complexity = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMethodEmailApplication(t *testing.T) {
	p := &domain.Posting{Description: "send applications to hiring@acme.io"}
	Evaluate(testConfig(), p)
	if p.ApplicationMethod != domain.MethodEmailApplication {
		t.Errorf("method = %q, want email application", p.ApplicationMethod)
	}

	p2 := &domain.Posting{Description: "no contact given"}
	Evaluate(testConfig(), p2)
	if p2.ApplicationMethod != domain.MethodManualResearch {
		t.Errorf("method = %q, want manual research", p2.ApplicationMethod)
	}
}

func TestContactEmail(t *testing.T) {
	if got := ContactEmail("reach us at jobs@example.com or call"); got != "jobs@example.com" {
		t.Errorf("ContactEmail = %q", got)
	}
	if got := ContactEmail("no address here"); got != "" {
		t.Errorf("ContactEmail = %q, want empty", got)
	}
}

func TestDayCounter(t *testing.T) {
	var c DayCounter
	max := 3

	for i := 0; i < max; i++ {
		if c.AtCap(max) {
			t.Fatalf("at cap after %d of %d", i, max)
		}
		c.Inc()
	}
	if !c.AtCap(max) {
		t.Error("expected at cap")
	}

	c.Reset()
	if c.AtCap(max) || c.Count() != 0 {
		t.Error("reset did not clear counter")
	}
}
