package catalog

import "github.com/gin-gonic/gin"

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	events := router.Group("/events")
	{
		events.GET("", controller.GetAllEvents)                  // GET /api/events - Browse all events
		events.GET("/:id", controller.GetEvent)                  // GET /api/events/:id - Event details with listingsCount
		events.GET("/:id/listings", controller.GetEventListings) // GET /api/events/:id/listings - Filtered, sorted listings
	}

	listings := router.Group("/listings")
	{
		listings.GET("/:id", controller.GetListing)               // GET /api/listings/:id - Listing with its event
		listings.PUT("/:id/image", controller.UpdateListingImage) // PUT /api/listings/:id/image - Admin: replace image
		listings.PUT("/:id/notes", controller.UpdateListingNotes) // PUT /api/listings/:id/notes - Admin: replace notes
	}

	router.GET("/search", controller.SearchEvents) // GET /api/search?q= - Search events
}
