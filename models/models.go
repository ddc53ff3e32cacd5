package models

import (
	"time"

	"gorm.io/gorm"
)

// PoolWeek status values
const (
	PoolStatusOpen        = "open"
	PoolStatusNumbersSent = "numbers_sent"
	PoolStatusClosed      = "closed"
)

// PoolEntry payment methods
const (
	PaymentMethodCard    = "card"
	PaymentMethodCredits = "credits"
)

// Lottery types
const (
	LotteryTypePowerball    = "powerball"
	LotteryTypeMegaMillions = "megamillions"
	LotteryTypeBoth         = "both"
)

// PoolEntry status values
const (
	EntryStatusPaid = "paid"
)

// PickForMe is the sentinel value a participant submits when they want
// the admin to pick their numbers.
const PickForMe = "pick for me"

// User represents a pool participant
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ReferralCode string `gorm:"uniqueIndex;not null" json:"referral_code"`
	ReferredBy   *uint  `json:"referred_by"`
	CreditCents  int64  `json:"credit_cents" gorm:"default:0;check:credit_cents >= 0"`

	Entries []PoolEntry `json:"-" gorm:"foreignKey:UserID"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PoolWeek represents one weekly pool window. Exactly one pool week may
// be open at a time; week_end always falls on a Thursday 22:00 boundary
// in the pool timezone.
type PoolWeek struct {
	gorm.Model
	WeekStart         time.Time `json:"week_start"`
	WeekEnd           time.Time `json:"week_end"`
	Status            string    `json:"status" gorm:"default:'open';index"`
	TotalParticipants int       `json:"total_participants" gorm:"default:0"`
	TotalAmountCents  int64     `json:"total_amount_cents" gorm:"default:0"`
	AdminNumbers      string    `json:"admin_numbers"`

	Entries []PoolEntry `json:"entries,omitempty" gorm:"foreignKey:PoolWeekID"`
}

// PoolEntry represents a paid participation in one pool week. The
// composite unique index is the storage-level guard against two entries
// for the same user in the same week.
type PoolEntry struct {
	gorm.Model
	UserID           uint     `json:"user_id" gorm:"not null;uniqueIndex:idx_pool_entries_user_week"`
	User             User     `json:"-" gorm:"foreignKey:UserID"`
	PoolWeekID       uint     `json:"pool_week_id" gorm:"not null;uniqueIndex:idx_pool_entries_user_week"`
	PoolWeek         PoolWeek `json:"-" gorm:"foreignKey:PoolWeekID"`
	AmountPaidCents  int64    `json:"amount_paid_cents"`
	CreditsUsedCents int64    `json:"credits_used_cents"`
	PaymentMethod    string   `json:"payment_method"`
	PaymentID        string   `json:"payment_id"`
	UserNumbers      string   `json:"user_numbers"`
	LotteryType      string   `json:"lottery_type"`
	TicketQty        int      `json:"ticket_qty"`
	Status           string   `json:"status" gorm:"default:'paid'"`
}

// Referral records who referred whom. At most one row per referred
// user; creating it pays the referrer a one-time credit bonus.
type Referral struct {
	gorm.Model
	ReferrerID uint `json:"referrer_id" gorm:"not null;index"`
	ReferredID uint `json:"referred_id" gorm:"not null;uniqueIndex"`
}

// Admin represents a portal administrator
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
