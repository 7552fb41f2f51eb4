package checkin

import (
	"math/rand"
	"sort"
)

// SelectScribe draws the note taker uniformly from attendees minus exclusions
// minus the host. The host is never eligible even when listed as an attendee.
// Runs are independent: nothing remembers who was drawn last week, so repeats
// are possible and accepted. The pool is deduplicated and sorted before the
// draw so a seeded rand source reproduces the same pick.
func SelectScribe(host string, attendees, exclusions []string, rng *rand.Rand) (string, error) {
	barred := make(map[string]struct{}, len(exclusions)+1)
	for _, p := range exclusions {
		barred[p] = struct{}{}
	}
	barred[host] = struct{}{}

	seen := make(map[string]struct{}, len(attendees))
	var pool []string
	for _, p := range attendees {
		if _, ok := barred[p]; ok {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pool = append(pool, p)
	}
	if len(pool) == 0 {
		return "", &NoEligibleScribeError{Host: host}
	}
	sort.Strings(pool)
	return pool[rng.Intn(len(pool))], nil
}
