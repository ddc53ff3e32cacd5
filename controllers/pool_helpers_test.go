package controllers

import (
	"os"
	"testing"
	"time"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB connects to the configured test database and clears the pool
// tables. Tests that need it skip when no database is configured.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set; skipping database-backed test")
	}
	if config.DB == nil {
		config.InitDB()
	}
	err := config.DB.Exec("TRUNCATE TABLE pool_entries, referrals, pool_weeks, users RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
	return config.DB
}

func TestResolveOpenPoolWeekIdempotent(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	first, err := resolveOpenPoolWeek(db, now)
	require.NoError(t, err)
	second, err := resolveOpenPoolWeek(db, now)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PoolStatusOpen, second.Status)

	var count int64
	require.NoError(t, db.Model(&models.PoolWeek{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveOpenPoolWeekStaleRollover(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	// An open pool from the previous cycle, with one paid entry
	oldStart, oldEnd := utils.PoolWindowFor(now.AddDate(0, 0, -7))
	stale := models.PoolWeek{WeekStart: oldStart, WeekEnd: oldEnd, Status: models.PoolStatusOpen}
	require.NoError(t, db.Create(&stale).Error)

	user := models.User{Email: "rollover@example.com", FirstName: "Rivka", ReferralCode: utils.GenerateReferralCode()}
	require.NoError(t, db.Create(&user).Error)
	entry := models.PoolEntry{
		UserID:          user.ID,
		PoolWeekID:      stale.ID,
		AmountPaidCents: 300,
		PaymentMethod:   models.PaymentMethodCard,
		LotteryType:     models.LotteryTypePowerball,
		TicketQty:       1,
		Status:          models.EntryStatusPaid,
	}
	require.NoError(t, db.Create(&entry).Error)

	fresh, err := resolveOpenPoolWeek(db, now)
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, fresh.ID)
	assert.Equal(t, models.PoolStatusOpen, fresh.Status)
	// The fresh window starts one minute after the stale one closed
	assert.True(t, fresh.WeekStart.Equal(stale.WeekEnd.Add(time.Minute)),
		"fresh window should start at old week_end + 1 minute")

	var closed models.PoolWeek
	require.NoError(t, db.First(&closed, stale.ID).Error)
	assert.Equal(t, models.PoolStatusClosed, closed.Status)
	assert.Equal(t, 1, closed.TotalParticipants)
	assert.Equal(t, int64(300), closed.TotalAmountCents)
}

func TestResolveOpenPoolWeekSweepsMissedRollovers(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	oldStart, oldEnd := utils.PoolWindowFor(now.AddDate(0, 0, -14))
	forgotten := models.PoolWeek{WeekStart: oldStart, WeekEnd: oldEnd, Status: models.PoolStatusNumbersSent}
	require.NoError(t, db.Create(&forgotten).Error)

	_, err := resolveOpenPoolWeek(db, now)
	require.NoError(t, err)

	var swept models.PoolWeek
	require.NoError(t, db.First(&swept, forgotten.ID).Error)
	assert.Equal(t, models.PoolStatusClosed, swept.Status)
}

func TestFindOrCreateUserReferralCreditedOnce(t *testing.T) {
	db := testDB(t)

	referrer := models.User{Email: "referrer@example.com", FirstName: "Mendel", ReferralCode: "FRIEND42"}
	require.NoError(t, db.Create(&referrer).Error)

	first, err := findOrCreateUser(db, "  New@Example.COM ", "Chaya", "Katz", "", "friend42")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", first.Email)
	require.NotNil(t, first.ReferredBy)
	assert.Equal(t, referrer.ID, *first.ReferredBy)

	// Find-or-create again: no second referral, no second bonus
	second, err := findOrCreateUser(db, "new@example.com", "Chaya", "Katz", "", "FRIEND42")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var referralCount int64
	require.NoError(t, db.Model(&models.Referral{}).Where("referred_id = ?", first.ID).Count(&referralCount).Error)
	assert.Equal(t, int64(1), referralCount)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, referrer.ID).Error)
	assert.Equal(t, utils.ReferralBonusCents, reloaded.CreditCents)
}

func TestFindOrCreateUserBadReferralCodeIgnored(t *testing.T) {
	db := testDB(t)

	user, err := findOrCreateUser(db, "solo@example.com", "Levi", "Gold", "", "NOSUCHCODE")
	require.NoError(t, err)
	assert.Nil(t, user.ReferredBy)

	var referralCount int64
	require.NoError(t, db.Model(&models.Referral{}).Count(&referralCount).Error)
	assert.Equal(t, int64(0), referralCount)
}
