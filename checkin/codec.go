package checkin

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// dateLayout is the 6-digit YYMMDD token embedded in every title.
const dateLayout = "060102"

var (
	dateTokenRe   = regexp.MustCompile(`\[(\d{6})\]`)
	seqTokenRe    = regexp.MustCompile(`#(\d+)\s*$`)
	trailingIntRe = regexp.MustCompile(`(\d+)\s*$`)
)

// ParseTitle extracts the scheduled date and sequence index from a check-in
// title such as "[240603] 팀 체크인 #12". The sequence token is "#N"; titles
// whose base omits the hash fall back to a trailing integer.
func ParseTitle(title string) (time.Time, int, error) {
	dm := dateTokenRe.FindStringSubmatch(title)
	if dm == nil {
		return time.Time{}, 0, &MalformedTitleError{Title: title}
	}
	day, err := time.Parse(dateLayout, dm[1])
	if err != nil {
		return time.Time{}, 0, &MalformedTitleError{Title: title}
	}

	sm := seqTokenRe.FindStringSubmatch(title)
	if sm == nil {
		sm = trailingIntRe.FindStringSubmatch(title)
	}
	if sm == nil {
		return time.Time{}, 0, &MalformedTitleError{Title: title}
	}
	index, err := strconv.Atoi(sm[1])
	if err != nil {
		return time.Time{}, 0, &MalformedTitleError{Title: title}
	}
	return day, index, nil
}

// FormatTitle is the inverse of ParseTitle: ParseTitle(FormatTitle(b, d, i))
// yields (d, i) for any base that does not itself end in a digit. The base
// carries its own separator, e.g. "팀 체크인 #" produces "[240610] 팀 체크인 #13".
func FormatTitle(baseTitle string, date time.Time, index int) string {
	return fmt.Sprintf("[%s] %s%d", date.Format(dateLayout), baseTitle, index)
}
