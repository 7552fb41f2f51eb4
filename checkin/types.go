package checkin

import "time"

// CategoryTag marks every generated page so the next run can find it again.
const CategoryTag = "OKR"

// TeamConfig carries the per-team inputs the engine needs. Attendees may
// include the host; Exclusions lists people who must never be drawn as scribe.
type TeamConfig struct {
	TeamName   string
	BaseTitle  string
	Host       string
	Attendees  []string
	Exclusions []string
	Channel    string
}

// LatestRecord is the newest check-in page the document service returned for a
// team. Its title is the only durable state the engine has: the next record's
// date and sequence index are derived from it.
type LatestRecord struct {
	CreatedAt   time.Time
	Title       string
	PeriodLabel string
	URL         string
}

// NewRecordRequest describes the page to create. It is handed to the document
// collaborator once and not reused.
type NewRecordRequest struct {
	Title         string
	ScheduledDate time.Time
	SequenceIndex int
	PeriodLabel   string
	Host          string
	Attendees     []string
	Scribe        string
	Tags          []string
}

// DecisionKind is the cadence verdict for one team and one run.
type DecisionKind int

const (
	// Create means a new record is due. Prior may still be nil (first-ever
	// record); the synthesizer decides what that means.
	Create DecisionKind = iota
	// SkipRecent means a record younger than the threshold already exists,
	// typically because a human created one by hand.
	SkipRecent
)

// Decision pairs the verdict with the record it was based on.
type Decision struct {
	Kind  DecisionKind
	Prior *LatestRecord
}

// NoAction reasons.
const (
	ReasonRecent        = "recent"
	ReasonNoPriorRecord = "no_prior_record"
)

// NoAction reports why no page was created this run.
type NoAction struct {
	Reason       string
	ReferenceURL string
}

// Outcome is the synthesizer result: exactly one of Request or NoAction is set.
type Outcome struct {
	Request  *NewRecordRequest
	NoAction *NoAction
}
