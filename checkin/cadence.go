package checkin

import "time"

// Decide applies the idempotency window: a record younger than thresholdDays
// means a human already created this period's page, so the run must not add
// another. The comparison is a strict <, so a record created exactly
// thresholdDays ago is already eligible again. With no prior record the
// verdict is Create with a nil Prior; the synthesizer decides whether that
// bootstraps a first record or ends in a no-action message.
func Decide(latest *LatestRecord, thresholdDays int, now time.Time) Decision {
	if latest == nil {
		return Decision{Kind: Create}
	}
	ageDays := int(now.Sub(latest.CreatedAt).Hours() / 24)
	if ageDays < thresholdDays {
		return Decision{Kind: SkipRecent, Prior: latest}
	}
	return Decision{Kind: Create, Prior: latest}
}
