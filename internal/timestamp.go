package internal

import "time"

// estimationWindow is the span over which record ages are interpolated when
// the storage format carries no explicit timestamps.
const estimationWindow = 90 * 24 * time.Hour

// EstimateCreatedAt derives an approximate creation time for a keyed-store
// record from its ordinal position: the maximum ordinal maps to now, the
// minimum to 90 days ago, everything between is linearly interpolated. The
// estimate is deliberately coarse but preserves relative recency ordering
// exactly. A single-record store (min == max) maps to now.
func EstimateCreatedAt(ordinal, minOrdinal, maxOrdinal int64, now time.Time) time.Time {
	if maxOrdinal <= minOrdinal {
		return now
	}
	if ordinal < minOrdinal {
		ordinal = minOrdinal
	}
	if ordinal > maxOrdinal {
		ordinal = maxOrdinal
	}
	fraction := float64(maxOrdinal-ordinal) / float64(maxOrdinal-minOrdinal)
	age := time.Duration(fraction * float64(estimationWindow))
	return now.Add(-age)
}
