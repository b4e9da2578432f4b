package cart

type AddItemRequest struct {
	ListingID int `json:"listingId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}
