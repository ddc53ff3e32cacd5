package controllers

import (
	"errors"
	"strings"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// activePoolWeek returns the most recent pool that is still open or
// awaiting its draw. Unlike the resolver it never creates a pool; the
// admin view should reflect what exists, not conjure a new window.
func activePoolWeek(db *gorm.DB) (*models.PoolWeek, error) {
	var pool models.PoolWeek
	err := db.Where("status IN ?", []string{models.PoolStatusOpen, models.PoolStatusNumbersSent}).
		Order("created_at DESC").First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("No active pool week", err)
	}
	if err != nil {
		return nil, utils.InternalError("Failed to look up active pool", err)
	}
	return &pool, nil
}

// paidEntriesWithUsers loads a pool's paid entries with their users
func paidEntriesWithUsers(db *gorm.DB, poolWeekID uint) ([]models.PoolEntry, error) {
	var entries []models.PoolEntry
	if err := db.Preload("User").
		Where("pool_week_id = ? AND status = ?", poolWeekID, models.EntryStatusPaid).
		Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, utils.InternalError("Failed to load pool entries", err)
	}
	return entries, nil
}

// GetCurrentPool handles GET /admin/pool/current: the active pool week
// plus its participant roster.
func GetCurrentPool(c *gin.Context) {
	utils.LogInfo("GetCurrentPool called")

	db := config.DB
	pool, err := activePoolWeek(db)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	entries, err := paidEntriesWithUsers(db, pool.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	participants := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		participants = append(participants, gin.H{
			"entry_id":           entry.ID,
			"name":               entry.User.FullName(),
			"email":              entry.User.Email,
			"phone":              entry.User.Phone,
			"lottery_type":       entry.LotteryType,
			"ticket_qty":         entry.TicketQty,
			"user_numbers":       entry.UserNumbers,
			"amount_paid_cents":  entry.AmountPaidCents,
			"credits_used_cents": entry.CreditsUsedCents,
			"payment_method":     entry.PaymentMethod,
		})
	}

	utils.LogDebug("Returning pool week %d with %d participants", pool.ID, len(participants))
	utils.Success(c, "Current pool", gin.H{
		"pool":         pool,
		"participants": participants,
	})
}

// SaveNumbersRequest carries the free-text ticket numbers for a pool
type SaveNumbersRequest struct {
	PoolWeekID uint   `json:"pool_week_id"`
	Numbers    string `json:"numbers" binding:"required"`
}

// SaveNumbers handles POST /admin/pool/numbers: persists the purchased
// ticket numbers against a pool week.
func SaveNumbers(c *gin.Context) {
	utils.LogInfo("SaveNumbers called")

	var req SaveNumbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid save-numbers request: %v", err)
		utils.BadRequest(c, "Numbers are required")
		return
	}

	db := config.DB
	pool, err := resolvePoolForAdmin(db, req.PoolWeekID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if err := db.Model(pool).Update("admin_numbers", strings.TrimSpace(req.Numbers)).Error; err != nil {
		utils.LogError("Failed to save numbers for pool %d: %v", pool.ID, err)
		utils.InternalServerError(c, "Failed to save numbers")
		return
	}

	utils.LogInfo("Saved numbers for pool week %d", pool.ID)
	utils.Success(c, "Numbers saved", gin.H{"pool_week_id": pool.ID})
}

// SendNumbersRequest identifies the pool to publish
type SendNumbersRequest struct {
	PoolWeekID uint `json:"pool_week_id"`
}

// SendNumbers handles POST /admin/pool/numbers/send: marks the pool
// numbers_sent and fans the numbers out to every paid participant.
// Individual email failures are logged and skipped.
func SendNumbers(c *gin.Context) {
	utils.LogInfo("SendNumbers called")

	var req SendNumbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid send-numbers request: %v", err)
		utils.BadRequest(c, "Invalid request body")
		return
	}

	db := config.DB
	pool, err := resolvePoolForAdmin(db, req.PoolWeekID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if strings.TrimSpace(pool.AdminNumbers) == "" {
		utils.LogError("Attempt to send numbers for pool %d before saving them", pool.ID)
		utils.BadRequest(c, "Save the ticket numbers before sending them")
		return
	}

	if err := db.Model(pool).Update("status", models.PoolStatusNumbersSent).Error; err != nil {
		utils.LogError("Failed to mark pool %d numbers_sent: %v", pool.ID, err)
		utils.InternalServerError(c, "Failed to update pool status")
		return
	}

	entries, err := paidEntriesWithUsers(db, pool.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	sent := 0
	for _, entry := range entries {
		if err := utils.SendPoolNumbers(entry.User.Email, entry.User.FirstName, pool.AdminNumbers, pool.WeekEnd); err != nil {
			utils.LogError("Failed to send numbers to %s: %v", entry.User.Email, err)
			continue
		}
		sent++
	}

	utils.LogInfo("Marked pool week %d numbers_sent, emailed %d of %d participants", pool.ID, sent, len(entries))
	utils.Success(c, "Numbers sent", gin.H{
		"pool_week_id": pool.ID,
		"emails_sent":  sent,
		"participants": len(entries),
	})
}

// ClosePool handles POST /admin/pool/close: force-closes the current
// pool. The next registration opens a fresh window via the resolver.
func ClosePool(c *gin.Context) {
	utils.LogInfo("ClosePool called")

	db := config.DB
	pool, err := activePoolWeek(db)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if err := closePoolWeek(db, pool); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Pool closed", gin.H{"pool_week_id": pool.ID})
}

// resolvePoolForAdmin loads a pool by id, or falls back to the active
// pool when no id was supplied
func resolvePoolForAdmin(db *gorm.DB, poolWeekID uint) (*models.PoolWeek, error) {
	if poolWeekID == 0 {
		return activePoolWeek(db)
	}
	var pool models.PoolWeek
	if err := db.First(&pool, poolWeekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Pool week not found", err)
		}
		return nil, utils.InternalError("Failed to load pool week", err)
	}
	return &pool, nil
}
