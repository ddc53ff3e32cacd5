package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JoinPoolRequest is the registration/payment request body
type JoinPoolRequest struct {
	PaymentToken string      `json:"payment_token"`
	Email        string      `json:"email"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Phone        string      `json:"phone"`
	LotteryType  string      `json:"lottery_type"`
	TicketQty    interface{} `json:"ticket_qty"`
	UserNumbers  string      `json:"user_numbers"`
	ReferralCode string      `json:"referral_code"`
}

// JoinPool handles POST /v1/pool/join: the single registration-and-
// payment operation. Credits are applied first; only the remainder goes
// to the card gateway, and all writes after a successful capture happen
// in one transaction.
func JoinPool(c *gin.Context) {
	utils.LogInfo("JoinPool called")

	var req JoinPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid join request: %v", err)
		utils.BadRequest(c, "Invalid request body")
		return
	}

	// Validation happens before any I/O
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		utils.LogError("Join request missing required fields")
		utils.BadRequest(c, "Email, first name and last name are required")
		return
	}

	db := config.DB
	now := time.Now()

	// Step 1: find-or-create the participant (referral bookkeeping is
	// best-effort inside)
	user, err := findOrCreateUser(db, req.Email, req.FirstName, req.LastName, req.Phone, req.ReferralCode)
	if err != nil {
		utils.LogError("Failed to resolve user for %s: %v", req.Email, err)
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Resolved user %d for join request", user.ID)

	// Step 2: resolve the active pool week, rolling over stale windows
	pool, err := resolveOpenPoolWeek(db, now)
	if err != nil {
		utils.LogError("Failed to resolve pool week: %v", err)
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Resolved open pool week %d ending %s", pool.ID, pool.WeekEnd.Format(time.RFC3339))

	// Step 3: duplicate-entry guard
	var existing models.PoolEntry
	err = db.Where("user_id = ? AND pool_week_id = ?", user.ID, pool.ID).First(&existing).Error
	if err == nil && existing.Status == models.EntryStatusPaid {
		utils.LogInfo("User %d already joined pool week %d", user.ID, pool.ID)
		utils.Conflict(c, "You have already joined this week's pool")
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Failed to check existing entry for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to check existing entry")
		return
	}

	// Steps 4-5: price in cents, credits applied first
	qty := utils.CoerceTicketQty(req.TicketQty)
	lotteryType := normalizeLotteryType(req.LotteryType)
	totalCents := utils.TotalCents(lotteryType, qty)
	creditsUsed, remainderCents := utils.ApplyCredits(user.CreditCents, totalCents)
	utils.LogDebug("Priced entry for user %d: total=%d credits=%d card=%d", user.ID, totalCents, creditsUsed, remainderCents)

	userNumbers := strings.TrimSpace(req.UserNumbers)
	if userNumbers == "" {
		userNumbers = models.PickForMe
	}

	// Step 6: capture the remainder, if any. A decline aborts with no
	// state change; the idempotency key is fresh per attempt so a
	// resubmission is safe.
	paymentID := ""
	paymentMethod := models.PaymentMethodCredits
	if remainderCents > 0 {
		if strings.TrimSpace(req.PaymentToken) == "" {
			utils.LogError("Join request for user %d needs %d cents but has no payment token", user.ID, remainderCents)
			utils.BadRequest(c, "A payment card is required for this entry")
			return
		}
		capture, err := utils.Gateway.Capture(utils.CaptureRequest{
			SourceToken:    req.PaymentToken,
			AmountCents:    remainderCents,
			BuyerEmail:     user.Email,
			IdempotencyKey: utils.NewIdempotencyKey(),
		})
		if err != nil {
			utils.LogError("Capture failed for user %d, pool %d: %v", user.ID, pool.ID, err)
			utils.AppErrorResponse(c, err)
			return
		}
		paymentID = capture.PaymentID
		paymentMethod = models.PaymentMethodCard
		utils.LogInfo("Captured %d cents for user %d, payment %s", remainderCents, user.ID, paymentID)
	}

	// Steps 7-9: entry upsert, credit deduction and aggregate refresh in
	// one transaction. Money has already been captured, so a failure
	// here is logged for manual reconciliation.
	entry := models.PoolEntry{
		UserID:           user.ID,
		PoolWeekID:       pool.ID,
		AmountPaidCents:  remainderCents,
		CreditsUsedCents: creditsUsed,
		PaymentMethod:    paymentMethod,
		PaymentID:        paymentID,
		UserNumbers:      userNumbers,
		LotteryType:      lotteryType,
		TicketQty:        qty,
		Status:           models.EntryStatusPaid,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// The composite unique index makes this race-safe: a concurrent
		// attempt for the same (user, week) updates in place instead of
		// inserting a second row
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "pool_week_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"amount_paid_cents", "credits_used_cents", "payment_method",
				"payment_id", "user_numbers", "lottery_type", "ticket_qty", "status", "updated_at",
			}),
		}).Create(&entry).Error; err != nil {
			return utils.InternalError("Failed to save pool entry", err)
		}

		if creditsUsed > 0 {
			res := tx.Model(&models.User{}).
				Where("id = ? AND credit_cents >= ?", user.ID, creditsUsed).
				UpdateColumn("credit_cents", gorm.Expr("credit_cents - ?", creditsUsed))
			if res.Error != nil {
				return utils.InternalError("Failed to deduct credits", res.Error)
			}
			if res.RowsAffected == 0 {
				return utils.InternalError("Credit balance changed during payment", nil)
			}
		}

		return refreshPoolAggregates(tx, pool.ID)
	})
	if err != nil {
		if paymentID != "" {
			utils.LogReconcile("payment %s for %d cents captured but entry write failed for user %d, pool %d: %v",
				paymentID, remainderCents, user.ID, pool.ID, err)
		}
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogInfo("Recorded entry %d for user %d in pool week %d", entry.ID, user.ID, pool.ID)

	// Step 10: best-effort confirmation email
	if err := utils.SendPoolConfirmation(user.Email, user.FirstName, user.ReferralCode, pool.WeekEnd); err != nil {
		utils.LogError("Failed to send confirmation email to %s: %v", user.Email, err)
	}

	utils.Success(c, "You're in this week's pool", gin.H{
		"entry": gin.H{
			"id":          entry.ID,
			"poolWeekEnd": pool.WeekEnd,
		},
		"user": gin.H{
			"referralCode": user.ReferralCode,
			"credits":      user.CreditCents - creditsUsed,
		},
	})
}

// normalizeLotteryType lowercases and validates the requested lottery
// type, defaulting to powerball
func normalizeLotteryType(lotteryType string) string {
	switch strings.ToLower(strings.TrimSpace(lotteryType)) {
	case models.LotteryTypeMegaMillions:
		return models.LotteryTypeMegaMillions
	case models.LotteryTypeBoth:
		return models.LotteryTypeBoth
	default:
		return models.LotteryTypePowerball
	}
}
