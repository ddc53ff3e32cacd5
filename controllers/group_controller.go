package controllers

import (
	"strings"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/models"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
)

// GetGroups handles GET /v1/groups: approved WhatsApp group listings
// with search, category filter and pagination.
func GetGroups(c *gin.Context) {
	utils.LogInfo("GetGroups called with query params: %v", c.Request.URL.Query())

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))

	query := config.DB.Model(&models.Group{}).Where("approved = ?", true)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count groups: %v", err)
		utils.InternalServerError(c, "Failed to list groups")
		return
	}
	pagination.SetTotal(total)

	var groups []models.Group
	if err := query.Order("title ASC").Limit(pagination.Limit).Offset(pagination.Offset).Find(&groups).Error; err != nil {
		utils.LogError("Failed to list groups: %v", err)
		utils.InternalServerError(c, "Failed to list groups")
		return
	}

	utils.SendPaginatedResponse(c, "groups", groups, pagination)
}

// SubmitGroupRequest is the public group submission body
type SubmitGroupRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	InviteLink  string `json:"invite_link" binding:"required"`
	MemberCount int    `json:"member_count"`
}

// SubmitGroup handles POST /v1/groups: submissions land unapproved and
// wait for moderation.
func SubmitGroup(c *gin.Context) {
	utils.LogInfo("SubmitGroup called")

	var req SubmitGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid group submission: %v", err)
		utils.BadRequest(c, "Title and invite link are required")
		return
	}

	group := models.Group{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		InviteLink:  strings.TrimSpace(req.InviteLink),
		MemberCount: req.MemberCount,
	}
	if err := config.DB.Create(&group).Error; err != nil {
		utils.LogError("Failed to save group submission: %v", err)
		utils.InternalServerError(c, "Failed to save group")
		return
	}

	utils.LogInfo("Group %d submitted for review", group.ID)
	utils.Created(c, "Group submitted for review", gin.H{"id": group.ID})
}

// ApproveGroup handles POST /admin/groups/:id/approve
func ApproveGroup(c *gin.Context) {
	utils.LogInfo("ApproveGroup called for id %s", c.Param("id"))

	var group models.Group
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		utils.LogError("Group not found: %v", err)
		utils.NotFound(c, "Group not found")
		return
	}

	if err := config.DB.Model(&group).Update("approved", true).Error; err != nil {
		utils.LogError("Failed to approve group %d: %v", group.ID, err)
		utils.InternalServerError(c, "Failed to approve group")
		return
	}

	utils.Success(c, "Group approved", gin.H{"id": group.ID})
}
