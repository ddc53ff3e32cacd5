package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findOrCreateUser looks up a participant by case-normalized email,
// creating the record on first payment attempt. Referral bookkeeping on
// the create path is best-effort and never fails registration.
func findOrCreateUser(db *gorm.DB, email, firstName, lastName, phone, referralCode string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("email = ?", normalized).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.InternalError("Failed to look up user", err)
	}

	user = models.User{
		Email:        normalized,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Phone:        strings.TrimSpace(phone),
		ReferralCode: utils.GenerateReferralCode(),
	}

	var referrer *models.User
	if code := strings.ToUpper(strings.TrimSpace(referralCode)); code != "" {
		var ref models.User
		if err := db.Where("referral_code = ?", code).First(&ref).Error; err == nil {
			referrer = &ref
			user.ReferredBy = &ref.ID
		} else {
			utils.LogInfo("Referral code %s did not resolve to a user", code)
		}
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, utils.InternalError("Failed to create user", err)
	}
	utils.LogInfo("Created user %d (%s)", user.ID, user.Email)

	if referrer != nil {
		creditReferrer(db, referrer, &user)
	}

	return &user, nil
}

// creditReferrer records the referral and pays the one-time bonus.
// The unique index on referred_id keeps the bonus single-shot even if
// the same new user races through registration twice.
func creditReferrer(db *gorm.DB, referrer, referred *models.User) {
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "referred_id"}},
		DoNothing: true,
	}).Create(&models.Referral{
		ReferrerID: referrer.ID,
		ReferredID: referred.ID,
	})
	if res.Error != nil {
		utils.LogError("Failed to record referral of user %d by %d: %v", referred.ID, referrer.ID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.LogInfo("Referral of user %d already recorded", referred.ID)
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", referrer.ID).
		UpdateColumn("credit_cents", gorm.Expr("credit_cents + ?", utils.ReferralBonusCents)).Error; err != nil {
		utils.LogError("Failed to credit referrer %d for user %d: %v", referrer.ID, referred.ID, err)
		return
	}
	utils.LogInfo("Credited referrer %d with %d cents for referring user %d", referrer.ID, utils.ReferralBonusCents, referred.ID)
}

// resolveOpenPoolWeek returns the pool week a registration placed at
// now should join, closing stale windows and lazily opening a fresh
// one. Rollover runs on demand rather than on a timer: correctness only
// matters at the moment someone transacts, and re-running the sweep is
// harmless.
func resolveOpenPoolWeek(db *gorm.DB, now time.Time) (*models.PoolWeek, error) {
	var pool models.PoolWeek
	err := db.Where("status = ?", models.PoolStatusOpen).Order("created_at DESC").First(&pool).Error
	switch {
	case err == nil:
		if pool.WeekEnd.After(now) {
			return &pool, nil
		}
		// Stale: freeze it, then sweep anything else a missed rollover
		// left behind
		if err := closePoolWeek(db, &pool); err != nil {
			return nil, err
		}
		if err := closeExpiredPools(db, now); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := closeExpiredPools(db, now); err != nil {
			return nil, err
		}
	default:
		return nil, utils.InternalError("Failed to look up open pool", err)
	}

	start, end := utils.PoolWindowFor(now)
	fresh := models.PoolWeek{
		WeekStart: start,
		WeekEnd:   end,
		Status:    models.PoolStatusOpen,
	}
	if err := db.Create(&fresh).Error; err != nil {
		return nil, utils.InternalError("Failed to open new pool week", err)
	}
	utils.LogInfo("Opened pool week %d (%s to %s)", fresh.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	return &fresh, nil
}

// closeExpiredPools closes every open or numbers_sent pool whose window
// already ended
func closeExpiredPools(db *gorm.DB, now time.Time) error {
	var expired []models.PoolWeek
	if err := db.Where("status IN ? AND week_end < ?",
		[]string{models.PoolStatusOpen, models.PoolStatusNumbersSent}, now).Find(&expired).Error; err != nil {
		return utils.InternalError("Failed to list expired pools", err)
	}
	for i := range expired {
		if err := closePoolWeek(db, &expired[i]); err != nil {
			return err
		}
	}
	return nil
}

// closePoolWeek freezes a pool's aggregates and marks it closed
func closePoolWeek(db *gorm.DB, pool *models.PoolWeek) error {
	participants, amount, err := poolAggregates(db, pool.ID)
	if err != nil {
		return err
	}
	if err := db.Model(pool).Updates(map[string]interface{}{
		"status":             models.PoolStatusClosed,
		"total_participants": participants,
		"total_amount_cents": amount,
	}).Error; err != nil {
		return utils.InternalError("Failed to close pool week", err)
	}
	utils.LogInfo("Closed pool week %d with %d participants, %d cents collected", pool.ID, participants, amount)
	return nil
}

// poolAggregates counts paid entries and sums their card amounts
func poolAggregates(db *gorm.DB, poolWeekID uint) (int64, int64, error) {
	var participants int64
	if err := db.Model(&models.PoolEntry{}).
		Where("pool_week_id = ? AND status = ?", poolWeekID, models.EntryStatusPaid).
		Count(&participants).Error; err != nil {
		return 0, 0, utils.InternalError("Failed to count pool entries", err)
	}

	var amount struct{ Total int64 }
	if err := db.Model(&models.PoolEntry{}).
		Select("COALESCE(SUM(amount_paid_cents), 0) AS total").
		Where("pool_week_id = ? AND status = ?", poolWeekID, models.EntryStatusPaid).
		Scan(&amount).Error; err != nil {
		return 0, 0, utils.InternalError("Failed to sum pool entries", err)
	}

	return participants, amount.Total, nil
}

// refreshPoolAggregates recomputes and persists a pool's counters
func refreshPoolAggregates(db *gorm.DB, poolWeekID uint) error {
	participants, amount, err := poolAggregates(db, poolWeekID)
	if err != nil {
		return err
	}
	if err := db.Model(&models.PoolWeek{}).Where("id = ?", poolWeekID).Updates(map[string]interface{}{
		"total_participants": participants,
		"total_amount_cents": amount,
	}).Error; err != nil {
		return utils.InternalError("Failed to refresh pool aggregates", err)
	}
	return nil
}
