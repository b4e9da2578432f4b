package cart

import "github.com/gin-gonic/gin"

func SetupCartRoutes(router *gin.RouterGroup, controller Controller) {
	cart := router.Group("/cart")
	{
		cart.GET("", controller.GetCart)                  // GET /api/cart - Lines with listing and event
		cart.POST("", controller.AddItem)                 // POST /api/cart - Add tickets, capped at the listing quantity
		cart.DELETE("/:listingId", controller.RemoveItem) // DELETE /api/cart/:listingId - Drop a line
	}
}
