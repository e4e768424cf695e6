package domain

import "time"

type Source string

const (
	SourceIndeed      Source = "indeed"
	SourceLinkedIn    Source = "linkedin"
	SourceCompanySite Source = "company"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "Junior"
	ExperienceMid    ExperienceLevel = "Mid"
	ExperienceSenior ExperienceLevel = "Senior"
)

type ApplicationMethod string

const (
	MethodEasyApply        ApplicationMethod = "Easy Apply"
	MethodExternalWebsite  ApplicationMethod = "External Website"
	MethodEmailApplication ApplicationMethod = "Email Application"
	MethodManualResearch   ApplicationMethod = "Manual Research Required"
)

type ApplicationComplexity string

const (
	ComplexitySimple  ApplicationComplexity = "Simple"
	ComplexityMedium  ApplicationComplexity = "Medium"
	ComplexityComplex ApplicationComplexity = "Complex"
	ComplexityUnknown ApplicationComplexity = "Unknown"
)

type ApplicationStatus string

const (
	StatusNotApplied       ApplicationStatus = "Not Applied"
	StatusAutoApplied      ApplicationStatus = "Auto Applied"
	StatusAutoApplyFailed  ApplicationStatus = "Auto Apply Failed"
	StatusAutoApplyError   ApplicationStatus = "Auto Apply Error"
	StatusManuallyApplied  ApplicationStatus = "Manually Applied"
	StatusResponseReceived ApplicationStatus = "Response Received"
	StatusInterview        ApplicationStatus = "Interview"
	StatusOffer            ApplicationStatus = "Offer"
	StatusRejected         ApplicationStatus = "Rejected"
)

// RawPosting is what a scraper hands the pipeline: best-effort field
// extraction, empty strings tolerated everywhere.
type RawPosting struct {
	Source      Source
	ExternalID  string // site-native id (Indeed jk=, LinkedIn job id), may be empty
	Title       string
	Company     string
	Location    string
	Salary      string
	JobType     string
	Description string

	URL                string
	ApplyURL           string
	EasyApplyAvailable bool
	PostedAt           *time.Time
}

// Posting is a RawPosting after the full analysis pipeline: normalized,
// keyed, scored, gated, and carrying lifecycle state.
type Posting struct {
	UniqueID   string
	Source     Source
	ExternalID string

	Title       string
	Company     string
	Location    string
	Salary      string
	JobType     string
	Description string

	Keywords        []string
	ExperienceLevel ExperienceLevel
	RemoteFriendly  bool
	PriorityScore   int

	URL                   string
	ApplyURL              string
	EasyApplyAvailable    bool
	ApplicationMethod     ApplicationMethod
	ApplicationComplexity ApplicationComplexity
	AutoApplyEligible     bool

	ApplicationStatus ApplicationStatus
	Notes             string
	PostedAt          *time.Time
	ScrapedAt         time.Time
	AppliedAt         *time.Time
	FollowUpAt        *time.Time
}
