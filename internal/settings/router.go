package settings

import "github.com/gin-gonic/gin"

func SetupSettingsRoutes(router *gin.RouterGroup, controller Controller) {
	router.GET("/config", controller.GetConfig)     // GET /api/config - Active configuration
	router.POST("/config", controller.UpdateConfig) // POST /api/config - Replace configuration namespaces

	scenarios := router.Group("/scenarios")
	{
		scenarios.GET("", controller.ListScenarios)      // GET /api/scenarios - Stored presets
		scenarios.POST("/load", controller.LoadScenario) // POST /api/scenarios/load - Activate a preset by name
	}
}
