package checkin

import "fmt"

// MalformedTitleError means the prior record's title does not follow the
// configured convention. The run for that team must stop here; guessing an
// index would silently fork the sequence.
type MalformedTitleError struct {
	Title string
}

func (e *MalformedTitleError) Error() string {
	return fmt.Sprintf("malformed check-in title %q: want a [YYMMDD] date token and a #N sequence token", e.Title)
}

// NoEligibleScribeError means attendees minus exclusions minus the host left
// nobody to take notes.
type NoEligibleScribeError struct {
	Host string
}

func (e *NoEligibleScribeError) Error() string {
	return fmt.Sprintf("no eligible scribe: attendee pool is empty after removing exclusions and host %q", e.Host)
}
