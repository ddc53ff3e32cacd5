package routes

import (
	"github.com/chevrutah247/crownheightsgroups-sub000/controllers"
	"github.com/chevrutah247/crownheightsgroups-sub000/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes wires the JWT-guarded admin API
func initAdminRoutes(router *gin.Engine) {
	admin := router.Group("/admin")

	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		pool := protected.Group("/pool")
		{
			pool.GET("/current", controllers.GetCurrentPool)
			pool.POST("/numbers", controllers.SaveNumbers)
			pool.POST("/numbers/send", controllers.SendNumbers)
			pool.POST("/close", controllers.ClosePool)
			pool.GET("/export/excel", controllers.DownloadParticipantsExcel)
			pool.GET("/export/pdf", controllers.DownloadParticipantsPDF)
		}

		protected.POST("/groups/:id/approve", controllers.ApproveGroup)
		protected.POST("/businesses/:id/approve", controllers.ApproveBusiness)
		protected.POST("/classifieds/:id/approve", controllers.ApproveClassified)
		protected.POST("/synagogues", controllers.SaveSynagogue)
	}
}
