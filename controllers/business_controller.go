package controllers

import (
	"strings"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
)

// GetBusinesses handles GET /v1/businesses: approved business listings
// with search, category filter and pagination.
func GetBusinesses(c *gin.Context) {
	utils.LogInfo("GetBusinesses called with query params: %v", c.Request.URL.Query())

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))

	query := config.DB.Model(&models.Business{}).Where("approved = ?", true)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count businesses: %v", err)
		utils.InternalServerError(c, "Failed to list businesses")
		return
	}
	pagination.SetTotal(total)

	var businesses []models.Business
	if err := query.Order("name ASC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&businesses).Error; err != nil {
		utils.LogError("Failed to list businesses: %v", err)
		utils.InternalServerError(c, "Failed to list businesses")
		return
	}

	utils.SendPaginatedResponse(c, "businesses", businesses, pagination)
}

// SubmitBusinessRequest is the public business submission body
type SubmitBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// SubmitBusiness handles POST /v1/businesses
func SubmitBusiness(c *gin.Context) {
	utils.LogInfo("SubmitBusiness called")

	var req SubmitBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid business submission: %v", err)
		utils.BadRequest(c, "Business name is required")
		return
	}

	business := models.Business{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		Website:     strings.TrimSpace(req.Website),
		Description: strings.TrimSpace(req.Description),
	}
	if err := config.DB.Create(&business).Error; err != nil {
		utils.LogError("Failed to save business submission: %v", err)
		utils.InternalServerError(c, "Failed to save business")
		return
	}

	utils.LogInfo("Business %d submitted for review", business.ID)
	utils.Created(c, "Business submitted for review", gin.H{"id": business.ID})
}

// ApproveBusiness handles POST /admin/businesses/:id/approve
func ApproveBusiness(c *gin.Context) {
	utils.LogInfo("ApproveBusiness called for id %s", c.Param("id"))

	var business models.Business
	if err := config.DB.First(&business, c.Param("id")).Error; err != nil {
		utils.LogError("Business not found: %v", err)
		utils.NotFound(c, "Business not found")
		return
	}

	if err := config.DB.Model(&business).Update("approved", true).Error; err != nil {
		utils.LogError("Failed to approve business %d: %v", business.ID, err)
		utils.InternalServerError(c, "Failed to approve business")
		return
	}

	utils.Success(c, "Business approved", gin.H{"id": business.ID})
}
