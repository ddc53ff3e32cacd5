package controllers

import (
	"strings"
	"time"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
)

// Classified ads stay live for 30 days unless the poster asks otherwise
const classifiedLifetime = 30 * 24 * time.Hour

// GetClassifieds handles GET /v1/classifieds: approved, unexpired ads
// with search, category filter and pagination.
func GetClassifieds(c *gin.Context) {
	utils.LogInfo("GetClassifieds called with query params: %v", c.Request.URL.Query())

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))

	query := config.DB.Model(&models.Classified{}).
		Where("approved = ? AND expires_at > ?", true, time.Now())
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count classifieds: %v", err)
		utils.InternalServerError(c, "Failed to list classifieds")
		return
	}
	pagination.SetTotal(total)

	var classifieds []models.Classified
	if err := query.Order("created_at DESC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&classifieds).Error; err != nil {
		utils.LogError("Failed to list classifieds: %v", err)
		utils.InternalServerError(c, "Failed to list classifieds")
		return
	}

	utils.SendPaginatedResponse(c, "classifieds", classifieds, pagination)
}

// SubmitClassifiedRequest is the public classified submission body
type SubmitClassifiedRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	Contact    string `json:"contact" binding:"required"`
}

// SubmitClassified handles POST /v1/classifieds
func SubmitClassified(c *gin.Context) {
	utils.LogInfo("SubmitClassified called")

	var req SubmitClassifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid classified submission: %v", err)
		utils.BadRequest(c, "Title and contact are required")
		return
	}

	classified := models.Classified{
		Title:      strings.TrimSpace(req.Title),
		Body:       strings.TrimSpace(req.Body),
		PriceCents: req.PriceCents,
		Category:   strings.TrimSpace(req.Category),
		Contact:    strings.TrimSpace(req.Contact),
		ExpiresAt:  time.Now().Add(classifiedLifetime),
	}
	if err := config.DB.Create(&classified).Error; err != nil {
		utils.LogError("Failed to save classified submission: %v", err)
		utils.InternalServerError(c, "Failed to save classified")
		return
	}

	utils.LogInfo("Classified %d submitted for review", classified.ID)
	utils.Created(c, "Classified submitted for review", gin.H{"id": classified.ID})
}

// ApproveClassified handles POST /admin/classifieds/:id/approve
func ApproveClassified(c *gin.Context) {
	utils.LogInfo("ApproveClassified called for id %s", c.Param("id"))

	var classified models.Classified
	if err := config.DB.First(&classified, c.Param("id")).Error; err != nil {
		utils.LogError("Classified not found: %v", err)
		utils.NotFound(c, "Classified not found")
		return
	}

	if err := config.DB.Model(&classified).Update("approved", true).Error; err != nil {
		utils.LogError("Failed to approve classified %d: %v", classified.ID, err)
		utils.InternalServerError(c, "Failed to approve classified")
		return
	}

	utils.Success(c, "Classified approved", gin.H{"id": classified.ID})
}
