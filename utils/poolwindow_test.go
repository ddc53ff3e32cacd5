package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func et(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, PoolLocation())
}

func TestNextPoolClose(t *testing.T) {
	t.Run("midweek resolves to this Thursday", func(t *testing.T) {
		// Wednesday, June 11 2025
		now := et(t, 2025, time.June, 11, 12, 0)
		close := NextPoolClose(now)
		assert.Equal(t, et(t, 2025, time.June, 12, 22, 0), close)
		assert.Equal(t, time.Thursday, close.Weekday())
	})

	t.Run("one minute before the boundary stays in this cycle", func(t *testing.T) {
		now := et(t, 2025, time.June, 12, 21, 59)
		assert.Equal(t, et(t, 2025, time.June, 12, 22, 0), NextPoolClose(now))
	})

	t.Run("at or past the boundary steps a full week", func(t *testing.T) {
		atBoundary := et(t, 2025, time.June, 12, 22, 0)
		assert.Equal(t, et(t, 2025, time.June, 19, 22, 0), NextPoolClose(atBoundary))

		justAfter := et(t, 2025, time.June, 12, 22, 1)
		assert.Equal(t, et(t, 2025, time.June, 19, 22, 0), NextPoolClose(justAfter))
	})

	t.Run("idempotent within a cycle", func(t *testing.T) {
		now := et(t, 2025, time.June, 9, 8, 30)
		assert.True(t, NextPoolClose(now).Equal(NextPoolClose(now)))
	})

	t.Run("input timezone does not matter", func(t *testing.T) {
		local := et(t, 2025, time.June, 11, 12, 0)
		assert.True(t, NextPoolClose(local).Equal(NextPoolClose(local.UTC())))
	})
}

func TestNextPoolCloseAcrossDST(t *testing.T) {
	t.Run("spring forward week", func(t *testing.T) {
		// DST starts Sunday, March 9 2025; the close lands in EDT
		now := et(t, 2025, time.March, 7, 12, 0)
		close := NextPoolClose(now)
		assert.Equal(t, et(t, 2025, time.March, 13, 22, 0), close)
		// 22:00 EDT is 02:00 UTC the next day
		assert.Equal(t, time.Date(2025, time.March, 14, 2, 0, 0, 0, time.UTC), close.UTC())
	})

	t.Run("fall back week", func(t *testing.T) {
		// DST ends Sunday, November 2 2025; the close lands in EST
		now := et(t, 2025, time.November, 1, 12, 0)
		close := NextPoolClose(now)
		assert.Equal(t, et(t, 2025, time.November, 6, 22, 0), close)
		// 22:00 EST is 03:00 UTC the next day
		assert.Equal(t, time.Date(2025, time.November, 7, 3, 0, 0, 0, time.UTC), close.UTC())
	})
}

func TestPoolWindowFor(t *testing.T) {
	t.Run("start sits one minute after the previous close", func(t *testing.T) {
		now := et(t, 2025, time.June, 11, 12, 0)
		start, end := PoolWindowFor(now)

		prevEnd := NextPoolClose(et(t, 2025, time.June, 4, 12, 0))
		assert.True(t, start.Equal(prevEnd.Add(time.Minute)))
		assert.Equal(t, et(t, 2025, time.June, 12, 22, 0), end)
	})

	t.Run("seam holds across spring forward", func(t *testing.T) {
		now := et(t, 2025, time.March, 7, 12, 0)
		start, end := PoolWindowFor(now)

		prevEnd := NextPoolClose(et(t, 2025, time.February, 28, 12, 0))
		assert.True(t, start.Equal(prevEnd.Add(time.Minute)))
		assert.Equal(t, et(t, 2025, time.March, 13, 22, 0), end)
	})

	t.Run("seam holds across fall back", func(t *testing.T) {
		now := et(t, 2025, time.November, 1, 12, 0)
		start, end := PoolWindowFor(now)

		prevEnd := NextPoolClose(et(t, 2025, time.October, 25, 12, 0))
		assert.True(t, start.Equal(prevEnd.Add(time.Minute)))
		assert.Equal(t, et(t, 2025, time.November, 6, 22, 0), end)
	})

	t.Run("rollover scenario at the boundary", func(t *testing.T) {
		// Pool A closed Thursday 22:00; a payment at 22:01 must open
		// pool B starting 22:01
		poolAEnd := et(t, 2025, time.June, 12, 22, 0)
		paymentAt := et(t, 2025, time.June, 12, 22, 1)

		start, end := PoolWindowFor(paymentAt)
		assert.True(t, start.Equal(poolAEnd.Add(time.Minute)))
		assert.Equal(t, et(t, 2025, time.June, 19, 22, 0), end)
	})
}
