// Package track owns the application status lifecycle. Transitions only move
// forward; walking a posting back requires an explicit operator override.
package track

import (
	"fmt"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

// FollowUpAfter is how long after an automated application the follow-up
// marker is scheduled.
const FollowUpAfter = 7 * 24 * time.Hour

var transitions = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.StatusNotApplied: {
		domain.StatusAutoApplied,
		domain.StatusAutoApplyFailed,
		domain.StatusAutoApplyError,
		domain.StatusManuallyApplied,
	},
	domain.StatusAutoApplied: {
		domain.StatusResponseReceived,
		domain.StatusInterview,
	},
	domain.StatusManuallyApplied: {
		domain.StatusResponseReceived,
		domain.StatusInterview,
	},
	// A failed or errored automated attempt leaves the posting open for a
	// manual follow-up.
	domain.StatusAutoApplyFailed: {
		domain.StatusManuallyApplied,
	},
	domain.StatusAutoApplyError: {
		domain.StatusManuallyApplied,
	},
	domain.StatusResponseReceived: {
		domain.StatusInterview,
		domain.StatusOffer,
		domain.StatusRejected,
	},
	domain.StatusInterview: {
		domain.StatusOffer,
		domain.StatusRejected,
	},
	// Offer and Rejected are terminal.
}

// CanTransition reports whether from -> to is a valid forward step.
func CanTransition(from, to domain.ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status admits no further transitions.
func Terminal(s domain.ApplicationStatus) bool {
	return len(transitions[s]) == 0
}

// Transition moves the posting to a new status, appending a timestamped note.
// AutoApplied additionally stamps AppliedAt and schedules the follow-up
// marker. Invalid steps are rejected unless override is set (operator
// correction).
func Transition(p *domain.Posting, to domain.ApplicationStatus, reason string, now time.Time, override bool) error {
	if !override && !CanTransition(p.ApplicationStatus, to) {
		return fmt.Errorf("invalid status transition %q -> %q", p.ApplicationStatus, to)
	}

	p.ApplicationStatus = to
	appendNote(p, now, reason)

	if to == domain.StatusAutoApplied || to == domain.StatusManuallyApplied {
		at := now
		p.AppliedAt = &at
	}
	if to == domain.StatusAutoApplied {
		fu := now.Add(FollowUpAfter)
		p.FollowUpAt = &fu
	}
	return nil
}

// Init stamps a freshly admitted posting with the initial status.
func Init(p *domain.Posting) {
	p.ApplicationStatus = domain.StatusNotApplied
}

func appendNote(p *domain.Posting, now time.Time, reason string) {
	if reason == "" {
		return
	}
	line := fmt.Sprintf("%s: %s", now.Format("2006-01-02"), reason)
	if p.Notes == "" {
		p.Notes = line
		return
	}
	p.Notes += " | " + line
}
