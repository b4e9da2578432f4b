package catalog

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/listings"
	"tixmarket/internal/shared/utils/response"
)

type Controller interface {
	GetAllEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetEventListings(c *gin.Context)
	GetListing(c *gin.Context)
	SearchEvents(c *gin.Context)
	UpdateListingImage(c *gin.Context)
	UpdateListingNotes(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	events, err := ctrl.service.ListEvents(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to retrieve events", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, ok := intParam(c, "id", "Invalid event ID")
	if !ok {
		return
	}

	event, err := ctrl.service.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondError(c, "Failed to retrieve event", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (ctrl *controller) GetEventListings(c *gin.Context) {
	eventID, ok := intParam(c, "id", "Invalid event ID")
	if !ok {
		return
	}

	filters := listings.Filters{
		MinPrice:       floatQuery(c, "minPrice"),
		MaxPrice:       floatQuery(c, "maxPrice"),
		Section:        c.Query("section"),
		DeliveryMethod: c.Query("deliveryMethod"),
		Sort:           c.Query("sort"),
	}

	result, err := ctrl.service.EventListings(c.Request.Context(), eventID, filters)
	if err != nil {
		response.RespondError(c, "Failed to retrieve listings", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Listings retrieved successfully", result, nil)
}

func (ctrl *controller) GetListing(c *gin.Context) {
	listingID, ok := intParam(c, "id", "Invalid listing ID")
	if !ok {
		return
	}

	listing, err := ctrl.service.GetListing(c.Request.Context(), listingID)
	if err != nil {
		response.RespondError(c, "Failed to retrieve listing", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Listing retrieved successfully", listing, nil)
}

func (ctrl *controller) SearchEvents(c *gin.Context) {
	events, err := ctrl.service.SearchEvents(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.RespondError(c, "Failed to search events", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

func (ctrl *controller) UpdateListingImage(c *gin.Context) {
	listingID, ok := intParam(c, "id", "Invalid listing ID")
	if !ok {
		return
	}

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	listing, err := ctrl.service.UpdateListingImage(c.Request.Context(), listingID, req.ImageURL)
	if err != nil {
		response.RespondError(c, "Failed to update listing image", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Listing image updated successfully", listing, nil)
}

func (ctrl *controller) UpdateListingNotes(c *gin.Context) {
	listingID, ok := intParam(c, "id", "Invalid listing ID")
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "notes must be an array", nil, err.Error())
		return
	}

	listing, err := ctrl.service.UpdateListingNotes(c.Request.Context(), listingID, req.Notes)
	if err != nil {
		response.RespondError(c, "Failed to update listing notes", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Listing notes updated successfully", listing, nil)
}

func intParam(c *gin.Context, name, message string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, message, nil, err.Error())
		return 0, false
	}
	return v, true
}

// floatQuery returns nil for a missing or unparseable value so the filter is
// skipped instead of rejecting the request.
func floatQuery(c *gin.Context, name string) *float64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
