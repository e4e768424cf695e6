package rank

import (
	"testing"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/config"
	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.ApplyDefaults()
	cfg.Scoring.Tier1Companies = []string{"Google", "Apple", "Microsoft", "Amazon", "Meta", "Netflix"}
	cfg.Scoring.Tier2Companies = []string{"Uber", "Airbnb", "Stripe", "Spotify", "Salesforce"}
	cfg.Scoring.PreferredKeywords = []string{"Python", "Machine Learning", "AWS", "Docker", "TensorFlow"}
	return cfg
}

func TestScoreIndeedScenario(t *testing.T) {
	s := Scorer{Cfg: testConfig()}

	p := &domain.Posting{
		Source:             domain.SourceIndeed,
		Title:              "Senior Data Engineer",
		Company:            "Google",
		Location:           "Remote",
		Salary:             "$120,000",
		Keywords:           []string{"AWS", "Docker"},
		RemoteFriendly:     true,
		EasyApplyAvailable: true,
		ScrapedAt:          time.Now(),
	}

	// 25 tier1 + 2*3 preferred keywords + 8 remote + 5 salary + 3 easy apply
	if got := s.Score(p); got != 47 {
		t.Errorf("Score() = %d, want 47", got)
	}
}

func TestScoreLinkedInProfile(t *testing.T) {
	s := Scorer{Cfg: testConfig()}

	p := &domain.Posting{
		Source:             domain.SourceLinkedIn,
		Company:            "Google",
		Keywords:           []string{"Python", "Spark"}, // all counted on linkedin, not just preferred
		EasyApplyAvailable: true,
		ScrapedAt:          time.Now(),
	}

	// 30 tier1 + 2*4 keywords + 10 easy apply = 48
	if got := s.Score(p); got != 48 {
		t.Errorf("Score() = %d, want 48", got)
	}
}

func TestScoreClampedAtMax(t *testing.T) {
	s := Scorer{Cfg: testConfig()}

	p := &domain.Posting{
		Source:             domain.SourceLinkedIn,
		Company:            "Google",
		Keywords:           []string{"Python", "SQL", "AWS", "Docker", "Spark", "Airflow"},
		RemoteFriendly:     true,
		EasyApplyAvailable: true,
		ScrapedAt:          time.Now(),
	}

	if got := s.Score(p); got != MaxScore {
		t.Errorf("Score() = %d, want clamp at %d", got, MaxScore)
	}
}

func TestScoreEmptyPosting(t *testing.T) {
	s := Scorer{Cfg: testConfig()}

	got := s.Score(&domain.Posting{Source: domain.SourceIndeed})
	if got != 0 {
		t.Errorf("empty posting scored %d, want 0", got)
	}
}

func TestScoreBounds(t *testing.T) {
	s := Scorer{Cfg: testConfig()}
	now := time.Now()
	old := now.Add(-10 * 24 * time.Hour)
	fresh := now.Add(-12 * time.Hour)

	postings := []*domain.Posting{
		{},
		{Source: domain.SourceCompanySite, Company: "Stripe"},
		{Source: domain.SourceIndeed, Company: "Unknown Startup", Salary: "$1", ScrapedAt: now, PostedAt: &old},
		{Source: domain.SourceIndeed, Company: "Netflix", ScrapedAt: now, PostedAt: &fresh, RemoteFriendly: true},
	}

	for i, p := range postings {
		got := s.Score(p)
		if got < 0 || got > MaxScore {
			t.Errorf("posting %d: score %d out of [0,%d]", i, got, MaxScore)
		}
	}
}

func TestRecencyBonus(t *testing.T) {
	s := Scorer{Cfg: testConfig()}
	now := time.Now()

	fresh := now.Add(-24 * time.Hour)
	stale := now.Add(-5 * 24 * time.Hour)

	pFresh := &domain.Posting{Source: domain.SourceIndeed, ScrapedAt: now, PostedAt: &fresh}
	pStale := &domain.Posting{Source: domain.SourceIndeed, ScrapedAt: now, PostedAt: &stale}

	if got := s.Score(pFresh); got != 5 {
		t.Errorf("fresh posting = %d, want recency bonus 5", got)
	}
	if got := s.Score(pStale); got != 0 {
		t.Errorf("stale posting = %d, want 0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := Scorer{Cfg: testConfig()}
	p := &domain.Posting{
		Source:         domain.SourceIndeed,
		Company:        "Spotify",
		Keywords:       []string{"AWS"},
		RemoteFriendly: true,
		ScrapedAt:      time.Now(),
	}
	first := s.Score(p)
	for i := 0; i < 10; i++ {
		if got := s.Score(p); got != first {
			t.Fatalf("score changed between calls: %d then %d", first, got)
		}
	}
}
