package catalog

type UpdateImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// UpdateNotesRequest leaves Notes nil when the field is missing or null,
// which the listing service rejects.
type UpdateNotesRequest struct {
	Notes []string `json:"notes"`
}
