package routes

import (
	"github.com/chevrutah247/crownheightsgroups-sub000/controllers"
	"github.com/gin-gonic/gin"
)

// initPublicRoutes wires the unauthenticated portal API
func initPublicRoutes(api *gin.RouterGroup) {
	// Weekly lottery pool
	pool := api.Group("/pool")
	{
		pool.POST("/join", controllers.JoinPool)
	}

	// Community directory
	api.GET("/groups", controllers.GetGroups)
	api.POST("/groups", controllers.SubmitGroup)

	api.GET("/businesses", controllers.GetBusinesses)
	api.POST("/businesses", controllers.SubmitBusiness)

	api.GET("/classifieds", controllers.GetClassifieds)
	api.POST("/classifieds", controllers.SubmitClassified)

	api.GET("/synagogues", controllers.GetSynagogues)
}
