// Package classify derives experience level and remote-friendliness from
// posting text. Both functions are pure token checks over lowercase text.
package classify

import (
	"strings"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

var seniorSignals = []string{
	"senior", "lead", "principal", "staff",
	"5+ years", "6+ years", "7+ years", "expert",
}

var juniorSignals = []string{
	"junior", "entry", "associate", "new grad",
	"0-2 years", "1-3 years",
}

var remoteIndicators = []string{
	"remote", "work from home", "distributed", "anywhere",
}

// Experience checks title+description against senior and junior signal
// tokens. Senior wins when both match; anything unsignaled is Mid.
func Experience(title, description string) domain.ExperienceLevel {
	content := strings.ToLower(title + " " + description)

	for _, tok := range seniorSignals {
		if strings.Contains(content, tok) {
			return domain.ExperienceSenior
		}
	}
	for _, tok := range juniorSignals {
		if strings.Contains(content, tok) {
			return domain.ExperienceJunior
		}
	}
	return domain.ExperienceMid
}

// RemoteFriendly reports whether location or description mention any remote
// indicator.
func RemoteFriendly(location, description string) bool {
	loc := strings.ToLower(location)
	desc := strings.ToLower(description)

	for _, tok := range remoteIndicators {
		if strings.Contains(loc, tok) || strings.Contains(desc, tok) {
			return true
		}
	}
	return false
}
