package checkin

import (
	"fmt"
	"time"
)

// PeriodOf maps a date to its Korean fiscal-quarter label, e.g. "2024년 2분기".
// Pure function of year and month.
func PeriodOf(date time.Time) string {
	quarter := (int(date.Month())-1)/3 + 1
	return fmt.Sprintf("%d년 %d분기", date.Year(), quarter)
}
