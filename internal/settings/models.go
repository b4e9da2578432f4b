package settings

import "encoding/json"

const (
	PriceFormatSymbol = "currency_symbol"
	PriceFormatCode   = "currency_code"
	PriceFormatNumber = "number_only"

	DateFormatUS   = "MM/DD/YYYY"
	DateFormatEU   = "DD/MM/YYYY"
	DateFormatISO  = "YYYY-MM-DD"
	DateFormatFull = "full"

	ResponseNested = "nested"
	ResponseFlat   = "flat"

	DescriptionsDetailed = "detailed"
	DescriptionsBrief    = "brief"
	DescriptionsMinimal  = "minimal"

	VenueFull        = "full"
	VenueNameOnly    = "name_only"
	VenueAddressOnly = "address_only"
)

// Config is the live document that shapes every API response.
type Config struct {
	UI      UI      `json:"ui"`
	API     API     `json:"api"`
	Content Content `json:"content"`
}

type UI struct {
	PriceFormat     string `json:"priceFormat" validate:"oneof=currency_symbol currency_code number_only"`
	DateFormat      string `json:"dateFormat" validate:"oneof=MM/DD/YYYY DD/MM/YYYY YYYY-MM-DD full"`
	UrgencyMessages bool   `json:"urgencyMessages"`
	StockCounts     bool   `json:"stockCounts"`
	ShowFees        bool   `json:"showFees"`
	ButtonText      string `json:"buttonText" validate:"max=64"`
	Currency        string `json:"currency" validate:"oneof=USD EUR GBP"`
}

type API struct {
	ResponseFormat          string `json:"responseFormat" validate:"oneof=nested flat"`
	IncludeFees             bool   `json:"includeFees"`
	PriceField              string `json:"priceField"`
	IncludeAvailability     bool   `json:"includeAvailability"`
	IncludePriceHistory     bool   `json:"includePriceHistory"`
	IncludeDealScore        bool   `json:"includeDealScore"`
	IncludeValueScore       bool   `json:"includeValueScore"`
	IncludeSavingsInfo      bool   `json:"includeSavingsInfo"`
	IncludeDemandIndicators bool   `json:"includeDemandIndicators"`
	IncludeBundleOptions    bool   `json:"includeBundleOptions"`
	IncludeRefundPolicy     bool   `json:"includeRefundPolicy"`
	IncludeTransferMethod   bool   `json:"includeTransferMethod"`
	IncludeSellerDetails    bool   `json:"includeSellerDetails"`
	IncludeDealFlags        bool   `json:"includeDealFlags"`
	IncludePremiumFeatures  bool   `json:"includePremiumFeatures"`
	IncludeRelativeValue    bool   `json:"includeRelativeValue"`
}

type Content struct {
	EventDescriptions string `json:"eventDescriptions" validate:"oneof=detailed brief minimal"`
	VenueInfo         string `json:"venueInfo" validate:"oneof=full name_only address_only"`
	ShowReviews       bool   `json:"showReviews"`
	ShowRatings       bool   `json:"showRatings"`
}

// Scenario is a named, stored configuration preset.
type Scenario struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Config      json.RawMessage `json:"config"`
}
