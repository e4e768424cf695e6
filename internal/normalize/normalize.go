// Package normalize cleans raw scraped text into a canonical form that is
// safe for delimited-text sinks. Every function here is pure and idempotent.
package normalize

import (
	"regexp"
	"strings"
)

var currencyRe = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?[kK]?`)

// CleanText collapses whitespace runs to single spaces, strips newlines and
// non-breaking spaces, and replaces double quotes with single quotes so the
// value cannot break a CSV cell.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Salary reduces a raw salary blurb to the currency amounts it mentions,
// joined with " - " ("$120,000 - $150,000"). When no amount is found the
// cleaned free text is returned as-is.
func Salary(s string) string {
	cleaned := CleanText(s)
	amounts := currencyRe.FindAllString(cleaned, -1)
	if len(amounts) == 0 {
		return cleaned
	}
	return strings.Join(amounts, " - ")
}

// Identity builds the stable posting key used by the dedup store. Site-native
// ids win; otherwise the key derives from company+title so the same posting
// maps to the same id across runs. Source is always appended: the same role
// scraped from two sites is two postings.
func Identity(externalID, company, title, source string) string {
	id := strings.TrimSpace(externalID)
	if id == "" {
		id = slug(company) + "_" + slug(title)
	}
	return id + "_" + source
}

func slug(s string) string {
	s = strings.ToLower(CleanText(s))
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
