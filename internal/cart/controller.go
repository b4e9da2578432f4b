package cart

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tixmarket/internal/shared/utils/response"
)

type Controller interface {
	GetCart(c *gin.Context)
	AddItem(c *gin.Context)
	RemoveItem(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetCart(c *gin.Context) {
	items, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, "Failed to retrieve cart", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cart retrieved successfully", items, nil)
}

func (ctrl *controller) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "listingId and quantity are required", nil, err.Error())
		return
	}

	item, err := ctrl.service.Add(c.Request.Context(), req.ListingID, req.Quantity)
	if err != nil {
		response.RespondError(c, "Failed to add item to cart", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Item added to cart", item, nil)
}

func (ctrl *controller) RemoveItem(c *gin.Context) {
	listingID, err := strconv.Atoi(c.Param("listingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid listing ID", nil, err.Error())
		return
	}

	if err := ctrl.service.Remove(c.Request.Context(), listingID); err != nil {
		response.RespondError(c, "Failed to remove item from cart", err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Item removed from cart", nil, nil)
}
