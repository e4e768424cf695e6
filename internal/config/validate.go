package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims/dedupes list fields and checks the config for
// values that would break a run (errors) or quietly do nothing (warnings).
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Scraping.TargetKeywords = trimList(out.Scraping.TargetKeywords)
	out.Scraping.PreferredLocations = trimList(out.Scraping.PreferredLocations)
	out.Scoring.PreferredKeywords = trimList(out.Scoring.PreferredKeywords)
	out.Scoring.Tier1Companies = trimList(out.Scoring.Tier1Companies)
	out.Scoring.Tier2Companies = trimList(out.Scoring.Tier2Companies)
	out.Sources.LinkedInMail.SubjectAny = trimList(out.Sources.LinkedInMail.SubjectAny)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Scraping.IntervalMinutes <= 0 {
		res.addErr("scraping.interval_minutes must be > 0")
	}
	if len(out.Scraping.TargetKeywords) == 0 {
		res.addWarn("scraping.target_keywords is empty; the eligibility gate will reject every posting.")
	}

	if out.Gate.MinAutoApplyScore < 0 || out.Gate.MinAutoApplyScore > 50 {
		res.addErr("gate.min_auto_apply_score must be 0..50")
	}
	if out.Apply.MinScore < 0 || out.Apply.MinScore > 50 {
		res.addErr("apply.min_score must be 0..50")
	}
	if out.Apply.MaxApplicationsPerDay <= 0 {
		res.addErr("apply.max_applications_per_day must be > 0")
	}
	if out.Apply.Enabled && out.Apply.DelaySeconds < 10 {
		res.addWarn("apply.delay_seconds is very low (%d); rapid submissions raise block risk.", out.Apply.DelaySeconds)
	}
	if out.Apply.Enabled && strings.TrimSpace(out.Apply.FromEmail) == "" {
		res.addWarn("apply.from_email is empty; email applications will be skipped.")
	}

	for name, p := range out.Scoring.Profiles {
		if p.Tier1Bonus < 0 || p.Tier2Bonus < 0 || p.KeywordWeight < 0 {
			res.addErr("scoring.profiles[%s] has negative weights", name)
		}
	}

	lm := out.Sources.LinkedInMail
	if lm.Enabled {
		if strings.TrimSpace(lm.IMAPHost) == "" {
			res.addErr("sources.linkedin_mail.imap_host is required when enabled")
		}
		if lm.IMAPPort == 0 {
			res.addErr("sources.linkedin_mail.imap_port is required when enabled")
		}
		if strings.TrimSpace(lm.Username) == "" {
			res.addErr("sources.linkedin_mail.username is required when enabled")
		}
		if len(lm.SubjectAny) == 0 {
			res.addWarn("sources.linkedin_mail.search_subject_any is empty; alert scraping may find nothing.")
		}
	}

	if out.Sources.Company.Enabled && len(out.Sources.Company.Pages) == 0 {
		res.addWarn("sources.company is enabled with no pages configured.")
	}

	return out, res
}
