package checkin

import (
	"errors"
	"math/rand"
	"time"
)

// Options configure the variant behaviors observed across deployments of this
// tool. Defaults: carry the previous quarter label forward, never invent the
// first record, sequence starts at 1.
type Options struct {
	// ThresholdDays is the cadence window; must be positive.
	ThresholdDays int
	// CarryForwardPeriod reuses the prior record's quarter label instead of
	// recomputing it from the new scheduled date.
	CarryForwardPeriod bool
	// BootstrapFirstRecord creates index SequenceBase when no prior record
	// exists instead of asking for a manual first page.
	BootstrapFirstRecord bool
	// SequenceBase is the index of a bootstrapped first record; 0 means 1.
	SequenceBase int
	// Rand is the scribe draw source; nil seeds from the clock.
	Rand *rand.Rand
}

// Synthesizer turns a cadence decision into either a create request or a
// no-action result. It performs no I/O.
type Synthesizer struct {
	opts Options
}

func NewSynthesizer(opts Options) (*Synthesizer, error) {
	if opts.ThresholdDays <= 0 {
		return nil, errors.New("threshold days must be positive")
	}
	if opts.SequenceBase == 0 {
		opts.SequenceBase = 1
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{opts: opts}, nil
}

// Synthesize derives the next record from the decision. With a prior record
// the new date is prior+7d and the index prior+1, parsed strictly from the
// prior title. Scribe selection runs on every create path; its failure is
// terminal for this team and no request is produced.
func (s *Synthesizer) Synthesize(d Decision, team TeamConfig, now time.Time) (Outcome, error) {
	switch {
	case d.Kind == SkipRecent:
		return Outcome{NoAction: &NoAction{Reason: ReasonRecent, ReferenceURL: d.Prior.URL}}, nil

	case d.Prior == nil:
		if !s.opts.BootstrapFirstRecord {
			return Outcome{NoAction: &NoAction{Reason: ReasonNoPriorRecord}}, nil
		}
		date := dateOnly(now).AddDate(0, 0, 7)
		return s.build(team, date, s.opts.SequenceBase, PeriodOf(date))

	default:
		priorDate, priorIndex, err := ParseTitle(d.Prior.Title)
		if err != nil {
			return Outcome{}, err
		}
		date := priorDate.AddDate(0, 0, 7)
		label := d.Prior.PeriodLabel
		if !s.opts.CarryForwardPeriod || label == "" {
			label = PeriodOf(date)
		}
		return s.build(team, date, priorIndex+1, label)
	}
}

func (s *Synthesizer) build(team TeamConfig, date time.Time, index int, label string) (Outcome, error) {
	scribe, err := SelectScribe(team.Host, team.Attendees, team.Exclusions, s.opts.Rand)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Request: &NewRecordRequest{
		Title:         FormatTitle(team.BaseTitle, date, index),
		ScheduledDate: date,
		SequenceIndex: index,
		PeriodLabel:   label,
		Host:          team.Host,
		Attendees:     team.Attendees,
		Scribe:        scribe,
		Tags:          []string{CategoryTag, team.TeamName},
	}}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
