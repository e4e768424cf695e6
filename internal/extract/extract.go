// Package extract maps free job-description text onto a closed vocabulary of
// recognized skills. Matching is deliberately dumb: lowercase substring
// containment against synonym lists, no stemming, so every hit is explainable.
package extract

import "strings"

type Skill struct {
	Name     string
	Synonyms []string
}

// Keywords returns the canonical names of every vocabulary skill whose
// synonym list hits the text. Multiple synonym hits still yield one entry
// (set semantics). Order follows the vocabulary, so output is deterministic.
func Keywords(text string) []string {
	if text == "" {
		return nil
	}
	low := strings.ToLower(text)

	var found []string
	for _, sk := range Vocabulary {
		for _, syn := range sk.Synonyms {
			if strings.Contains(low, syn) {
				found = append(found, sk.Name)
				break
			}
		}
	}
	return found
}

// Has reports whether the canonical skill name is in the keyword list,
// case-insensitively.
func Has(keywords []string, name string) bool {
	for _, k := range keywords {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
