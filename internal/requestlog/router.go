package requestlog

import "github.com/gin-gonic/gin"

func SetupLogRoutes(router *gin.RouterGroup, controller Controller) {
	logs := router.Group("/logs")
	{
		logs.GET("", controller.GetLogs)                // GET /api/logs - Filtered entries, newest first
		logs.GET("/stats", controller.GetStats)         // GET /api/logs/stats - Totals and recent breakdowns
		logs.GET("/export/json", controller.ExportJSON) // GET /api/logs/export/json - Download as JSON
		logs.GET("/export/csv", controller.ExportCSV)   // GET /api/logs/export/csv - Download as CSV
		logs.DELETE("", controller.ClearLogs)           // DELETE /api/logs - Drop all entries
	}
}
