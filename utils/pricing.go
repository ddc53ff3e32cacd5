package utils

import (
	"strconv"
	"strings"

	"github.com/chevrutah247/crownheightsgroups-sub000/models"
)

// Per-unit contribution prices in cents. Base ticket cost plus the
// service fee, per lottery type.
const (
	UnitCentsPowerball    int64 = 300
	UnitCentsMegaMillions int64 = 600
	UnitCentsBoth         int64 = 900
)

// ReferralBonusCents is the one-time credit paid to a referrer when
// someone they referred first registers.
const ReferralBonusCents int64 = 100

// Ticket quantity bounds
const (
	MinTicketQty = 1
	MaxTicketQty = 10
)

// TicketUnitCents returns the per-unit price for a lottery type.
// Unknown or missing types fall back to the powerball price.
func TicketUnitCents(lotteryType string) int64 {
	switch strings.ToLower(strings.TrimSpace(lotteryType)) {
	case models.LotteryTypeMegaMillions:
		return UnitCentsMegaMillions
	case models.LotteryTypeBoth:
		return UnitCentsBoth
	default:
		return UnitCentsPowerball
	}
}

// ClampTicketQty coerces a quantity into [1, 10]
func ClampTicketQty(qty int) int {
	if qty < MinTicketQty {
		return MinTicketQty
	}
	if qty > MaxTicketQty {
		return MaxTicketQty
	}
	return qty
}

// CoerceTicketQty converts the raw JSON value for ticket quantity into
// a clamped int. Clients send numbers, numeric strings, or garbage;
// anything unusable becomes 1 rather than an error.
func CoerceTicketQty(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		return ClampTicketQty(int(v))
	case int:
		return ClampTicketQty(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return MinTicketQty
		}
		return ClampTicketQty(n)
	default:
		return MinTicketQty
	}
}

// TotalCents computes the total contribution for a lottery type and
// ticket quantity.
func TotalCents(lotteryType string, qty int) int64 {
	return TicketUnitCents(lotteryType) * int64(ClampTicketQty(qty))
}

// ApplyCredits splits a charge between the user's credit balance and
// the card gateway. Credits are applied first, up to the amount due.
func ApplyCredits(availableCents, dueCents int64) (used, remainder int64) {
	if availableCents <= 0 {
		return 0, dueCents
	}
	used = availableCents
	if used > dueCents {
		used = dueCents
	}
	return used, dueCents - used
}
