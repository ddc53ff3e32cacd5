package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalCents(t *testing.T) {
	t.Run("price table", func(t *testing.T) {
		assert.Equal(t, int64(300), TotalCents("powerball", 1))
		assert.Equal(t, int64(1800), TotalCents("megamillions", 3))
		assert.Equal(t, int64(9000), TotalCents("both", 10))
	})

	t.Run("unknown type falls back to powerball", func(t *testing.T) {
		assert.Equal(t, int64(300), TotalCents("unknown", 1))
		assert.Equal(t, int64(300), TotalCents("", 1))
		assert.Equal(t, int64(300), TotalCents("  POWERBALL  ", 1))
	})

	t.Run("quantity is clamped", func(t *testing.T) {
		assert.Equal(t, TotalCents("powerball", 1), TotalCents("powerball", 0))
		assert.Equal(t, TotalCents("powerball", 1), TotalCents("powerball", -5))
		assert.Equal(t, TotalCents("both", 10), TotalCents("both", 99))
	})
}

func TestCoerceTicketQty(t *testing.T) {
	// JSON numbers decode as float64
	assert.Equal(t, 3, CoerceTicketQty(float64(3)))
	assert.Equal(t, 1, CoerceTicketQty(float64(0)))
	assert.Equal(t, 1, CoerceTicketQty(float64(-2)))
	assert.Equal(t, 10, CoerceTicketQty(float64(25)))

	assert.Equal(t, 5, CoerceTicketQty("5"))
	assert.Equal(t, 5, CoerceTicketQty(" 5 "))
	assert.Equal(t, 1, CoerceTicketQty("abc"))
	assert.Equal(t, 1, CoerceTicketQty(""))
	assert.Equal(t, 1, CoerceTicketQty(nil))
	assert.Equal(t, 1, CoerceTicketQty(true))
}

func TestApplyCredits(t *testing.T) {
	t.Run("partial cover", func(t *testing.T) {
		used, remainder := ApplyCredits(250, 300)
		assert.Equal(t, int64(250), used)
		assert.Equal(t, int64(50), remainder)
	})

	t.Run("full cover leaves balance", func(t *testing.T) {
		used, remainder := ApplyCredits(1000, 300)
		assert.Equal(t, int64(300), used)
		assert.Equal(t, int64(0), remainder)
	})

	t.Run("no credits", func(t *testing.T) {
		used, remainder := ApplyCredits(0, 300)
		assert.Equal(t, int64(0), used)
		assert.Equal(t, int64(300), remainder)
	})

	t.Run("negative balance treated as zero", func(t *testing.T) {
		used, remainder := ApplyCredits(-50, 300)
		assert.Equal(t, int64(0), used)
		assert.Equal(t, int64(300), remainder)
	})

	t.Run("exact cover", func(t *testing.T) {
		used, remainder := ApplyCredits(300, 300)
		assert.Equal(t, int64(300), used)
		assert.Equal(t, int64(0), remainder)
	})
}
