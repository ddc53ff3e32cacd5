package controllers

import (
	"strings"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
)

// GetSynagogues handles GET /v1/synagogues: shul listings with search
// and pagination. Synagogue records are admin-maintained, so there is
// no approval filter.
func GetSynagogues(c *gin.Context) {
	utils.LogInfo("GetSynagogues called with query params: %v", c.Request.URL.Query())

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(c.Query("search"))
	nusach := strings.TrimSpace(c.Query("nusach"))

	query := config.DB.Model(&models.Synagogue{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}
	if nusach != "" {
		query = query.Where("nusach = ?", nusach)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count synagogues: %v", err)
		utils.InternalServerError(c, "Failed to list synagogues")
		return
	}
	pagination.SetTotal(total)

	var synagogues []models.Synagogue
	if err := query.Order("name ASC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&synagogues).Error; err != nil {
		utils.LogError("Failed to list synagogues: %v", err)
		utils.InternalServerError(c, "Failed to list synagogues")
		return
	}

	utils.SendPaginatedResponse(c, "synagogues", synagogues, pagination)
}

// SaveSynagogueRequest is the admin synagogue upsert body
type SaveSynagogueRequest struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	Nusach      string `json:"nusach"`
	Address     string `json:"address"`
	Rabbi       string `json:"rabbi"`
	MinyanTimes string `json:"minyan_times"`
	Website     string `json:"website"`
}

// SaveSynagogue handles POST /admin/synagogues: create or update a
// shul listing.
func SaveSynagogue(c *gin.Context) {
	utils.LogInfo("SaveSynagogue called")

	var req SaveSynagogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid synagogue request: %v", err)
		utils.BadRequest(c, "Synagogue name is required")
		return
	}

	synagogue := models.Synagogue{
		Name:        strings.TrimSpace(req.Name),
		Nusach:      strings.TrimSpace(req.Nusach),
		Address:     strings.TrimSpace(req.Address),
		Rabbi:       strings.TrimSpace(req.Rabbi),
		MinyanTimes: strings.TrimSpace(req.MinyanTimes),
		Website:     strings.TrimSpace(req.Website),
	}

	if req.ID != 0 {
		var existing models.Synagogue
		if err := config.DB.First(&existing, req.ID).Error; err != nil {
			utils.LogError("Synagogue %d not found: %v", req.ID, err)
			utils.NotFound(c, "Synagogue not found")
			return
		}
		if err := config.DB.Model(&existing).Updates(&synagogue).Error; err != nil {
			utils.LogError("Failed to update synagogue %d: %v", req.ID, err)
			utils.InternalServerError(c, "Failed to update synagogue")
			return
		}
		utils.Success(c, "Synagogue updated", gin.H{"id": existing.ID})
		return
	}

	if err := config.DB.Create(&synagogue).Error; err != nil {
		utils.LogError("Failed to create synagogue: %v", err)
		utils.InternalServerError(c, "Failed to create synagogue")
		return
	}

	utils.Created(c, "Synagogue created", gin.H{"id": synagogue.ID})
}
