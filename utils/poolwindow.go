package utils

import (
	"time"
)

// The weekly pool closes Thursday 22:00 in the community's civil
// timezone, regardless of where the server runs.
const (
	PoolTimezone     = "America/New_York"
	poolCloseWeekday = time.Thursday
	poolCloseHour    = 22
)

var poolLocation = mustLoadPoolLocation()

func mustLoadPoolLocation() *time.Location {
	loc, err := time.LoadLocation(PoolTimezone)
	if err != nil {
		panic("failed to load pool timezone " + PoolTimezone + ": " + err.Error())
	}
	return loc
}

// PoolLocation returns the civil timezone the pool boundary is
// evaluated in.
func PoolLocation() *time.Location {
	return poolLocation
}

// NextPoolClose returns the next Thursday 22:00 boundary strictly after
// now, evaluated in the pool timezone.
func NextPoolClose(now time.Time) time.Time {
	local := now.In(poolLocation)

	daysAhead := (int(poolCloseWeekday) - int(local.Weekday()) + 7) % 7
	candidate := time.Date(local.Year(), local.Month(), local.Day()+daysAhead,
		poolCloseHour, 0, 0, 0, poolLocation)

	// Already past this cycle's boundary: step forward a full week
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 7)
	}

	return candidate
}

// PoolWindowFor computes the window boundaries for a pool created at
// now. week_start sits one minute after the previous window's close, so
// consecutive windows never overlap.
func PoolWindowFor(now time.Time) (start, end time.Time) {
	end = NextPoolClose(now)
	start = end.AddDate(0, 0, -7).Add(time.Minute)
	return start, end
}
