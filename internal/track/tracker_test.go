package track

import (
	"strings"
	"testing"
	"time"

	"github.com/SvachutaGollavilli/jobs-scrapper/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.ApplicationStatus
		want     bool
	}{
		{domain.StatusNotApplied, domain.StatusAutoApplied, true},
		{domain.StatusNotApplied, domain.StatusAutoApplyFailed, true},
		{domain.StatusNotApplied, domain.StatusManuallyApplied, true},
		{domain.StatusAutoApplied, domain.StatusResponseReceived, true},
		{domain.StatusAutoApplied, domain.StatusInterview, true},
		{domain.StatusAutoApplyFailed, domain.StatusManuallyApplied, true},
		{domain.StatusResponseReceived, domain.StatusOffer, true},
		{domain.StatusInterview, domain.StatusRejected, true},

		// no regressions
		{domain.StatusAutoApplied, domain.StatusNotApplied, false},
		{domain.StatusOffer, domain.StatusRejected, false},
		{domain.StatusRejected, domain.StatusNotApplied, false},
		{domain.StatusInterview, domain.StatusNotApplied, false},
		// no skipping into apply states twice
		{domain.StatusAutoApplied, domain.StatusManuallyApplied, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !Terminal(domain.StatusOffer) || !Terminal(domain.StatusRejected) {
		t.Error("Offer and Rejected must be terminal")
	}
	if Terminal(domain.StatusNotApplied) || Terminal(domain.StatusAutoApplied) {
		t.Error("non-terminal status reported terminal")
	}
}

func TestTransitionRejectsRegression(t *testing.T) {
	p := &domain.Posting{ApplicationStatus: domain.StatusAutoApplied}
	err := Transition(p, domain.StatusNotApplied, "oops", time.Now(), false)
	if err == nil {
		t.Fatal("expected regression to be rejected")
	}
	if p.ApplicationStatus != domain.StatusAutoApplied {
		t.Error("rejected transition must not mutate status")
	}
}

func TestTransitionOperatorOverride(t *testing.T) {
	p := &domain.Posting{ApplicationStatus: domain.StatusAutoApplied}
	if err := Transition(p, domain.StatusNotApplied, "operator correction", time.Now(), true); err != nil {
		t.Fatalf("override transition failed: %v", err)
	}
	if p.ApplicationStatus != domain.StatusNotApplied {
		t.Error("override did not apply")
	}
}

func TestAutoAppliedSideEffects(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	p := &domain.Posting{ApplicationStatus: domain.StatusNotApplied}

	if err := Transition(p, domain.StatusAutoApplied, "auto-applied via easy apply", now, false); err != nil {
		t.Fatal(err)
	}
	if p.AppliedAt == nil || !p.AppliedAt.Equal(now) {
		t.Error("AppliedAt not stamped")
	}
	if p.FollowUpAt == nil || !p.FollowUpAt.Equal(now.Add(FollowUpAfter)) {
		t.Error("follow-up marker not scheduled")
	}
	if !strings.Contains(p.Notes, "2026-08-30") || !strings.Contains(p.Notes, "auto-applied") {
		t.Errorf("note missing detail: %q", p.Notes)
	}
}

func TestNotesAccumulate(t *testing.T) {
	now := time.Now()
	p := &domain.Posting{ApplicationStatus: domain.StatusNotApplied}

	_ = Transition(p, domain.StatusAutoApplied, "applied", now, false)
	_ = Transition(p, domain.StatusResponseReceived, "recruiter reply", now, false)

	if !strings.Contains(p.Notes, "applied") || !strings.Contains(p.Notes, "recruiter reply") {
		t.Errorf("notes lost history: %q", p.Notes)
	}
}

func TestInit(t *testing.T) {
	var p domain.Posting
	Init(&p)
	if p.ApplicationStatus != domain.StatusNotApplied {
		t.Errorf("initial status = %q", p.ApplicationStatus)
	}
}
