package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a per-source scoring table. Sources weight the same
// attributes differently, so the divergence stays configurable instead
// of being unified silently.
type Profile struct {
	Tier1Bonus     int  `yaml:"tier1_bonus"`
	Tier2Bonus     int  `yaml:"tier2_bonus"`
	KeywordWeight  int  `yaml:"keyword_weight"`
	PreferredOnly  bool `yaml:"preferred_only"` // weight only preferred keywords, not every extracted one
	RemoteBonus    int  `yaml:"remote_bonus"`
	SalaryBonus    int  `yaml:"salary_bonus"`
	EasyApplyBonus int  `yaml:"easy_apply_bonus"`
	RecencyBonus   int  `yaml:"recency_bonus"`
}

type CompanyPage struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Format string `yaml:"format"` // json | html
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scraping struct {
		IntervalMinutes    int      `yaml:"interval_minutes"`
		TargetKeywords     []string `yaml:"target_keywords"`
		PreferredLocations []string `yaml:"preferred_locations"`
		RequestsPerSecond  float64  `yaml:"requests_per_second"`
	} `yaml:"scraping"`

	Sources struct {
		Indeed struct {
			Enabled bool   `yaml:"enabled"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"indeed"`
		Company struct {
			Enabled bool          `yaml:"enabled"`
			Pages   []CompanyPage `yaml:"pages"`
		} `yaml:"company"`
		LinkedInMail struct {
			Enabled    bool     `yaml:"enabled"`
			IMAPHost   string   `yaml:"imap_host"`
			IMAPPort   int      `yaml:"imap_port"`
			Username   string   `yaml:"username"`
			Mailbox    string   `yaml:"mailbox"`
			SubjectAny []string `yaml:"search_subject_any"`
			SinceDays  int      `yaml:"since_days"`
		} `yaml:"linkedin_mail"`
	} `yaml:"sources"`

	Scoring struct {
		PreferredKeywords []string           `yaml:"preferred_keywords"`
		Tier1Companies    []string           `yaml:"tier1_companies"`
		Tier2Companies    []string           `yaml:"tier2_companies"`
		Profiles          map[string]Profile `yaml:"profiles"` // keyed by source name
	} `yaml:"scoring"`

	Gate struct {
		MinAutoApplyScore int `yaml:"min_auto_apply_score"`
	} `yaml:"gate"`

	Apply struct {
		Enabled               bool   `yaml:"enabled"`
		MaxApplicationsPerDay int    `yaml:"max_applications_per_day"`
		MinScore              int    `yaml:"min_score"`
		DelaySeconds          int    `yaml:"delay_seconds"`
		SMTPHost              string `yaml:"smtp_host"`
		SMTPPort              int    `yaml:"smtp_port"`
		FromEmail             string `yaml:"from_email"`
	} `yaml:"apply"`

	Sinks struct {
		CSVPath   string `yaml:"csv_path"`
		BackupDir string `yaml:"backup_dir"`
	} `yaml:"sinks"`

	History struct {
		KeepSessions int `yaml:"keep_sessions"`
	} `yaml:"history"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills zero-valued knobs so a sparse user config still runs.
func (c *Config) ApplyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 38471
	}
	if c.Scraping.IntervalMinutes <= 0 {
		c.Scraping.IntervalMinutes = 240
	}
	if c.Scraping.RequestsPerSecond <= 0 {
		c.Scraping.RequestsPerSecond = 0.5
	}
	if c.Gate.MinAutoApplyScore == 0 {
		c.Gate.MinAutoApplyScore = 20
	}
	if c.Apply.MaxApplicationsPerDay == 0 {
		c.Apply.MaxApplicationsPerDay = 10
	}
	if c.Apply.MinScore == 0 {
		c.Apply.MinScore = 25
	}
	if c.Apply.DelaySeconds == 0 {
		c.Apply.DelaySeconds = 30
	}
	if c.History.KeepSessions == 0 {
		c.History.KeepSessions = 30
	}
	if c.Sources.LinkedInMail.Mailbox == "" {
		c.Sources.LinkedInMail.Mailbox = "INBOX"
	}
	if c.Sources.LinkedInMail.SinceDays <= 0 {
		c.Sources.LinkedInMail.SinceDays = 3
	}
	if c.Sources.Indeed.BaseURL == "" {
		c.Sources.Indeed.BaseURL = "https://www.indeed.com"
	}
	if c.Scoring.Profiles == nil {
		c.Scoring.Profiles = map[string]Profile{}
	}
	for name, p := range defaultProfiles() {
		if _, ok := c.Scoring.Profiles[name]; !ok {
			c.Scoring.Profiles[name] = p
		}
	}
}

// ProfileFor returns the scoring table for a source, falling back to the
// Indeed table for unknown sources.
func (c Config) ProfileFor(source string) Profile {
	if p, ok := c.Scoring.Profiles[source]; ok {
		return p
	}
	return c.Scoring.Profiles["indeed"]
}

func defaultProfiles() map[string]Profile {
	return map[string]Profile{
		"indeed": {
			Tier1Bonus: 25, Tier2Bonus: 15,
			KeywordWeight: 3, PreferredOnly: true,
			RemoteBonus: 8, SalaryBonus: 5, EasyApplyBonus: 3, RecencyBonus: 5,
		},
		// LinkedIn postings historically scored hotter: bigger tier-1 and
		// easy-apply bonuses, every keyword counted.
		"linkedin": {
			Tier1Bonus: 30, Tier2Bonus: 0,
			KeywordWeight: 4, PreferredOnly: false,
			RemoteBonus: 8, SalaryBonus: 0, EasyApplyBonus: 10, RecencyBonus: 0,
		},
		"company": {
			Tier1Bonus: 25, Tier2Bonus: 15,
			KeywordWeight: 4, PreferredOnly: false,
			RemoteBonus: 8, SalaryBonus: 5, EasyApplyBonus: 0, RecencyBonus: 5,
		},
	}
}
