package settings

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"tixmarket/internal/shared/apperr"
)

var validate = validator.New()

// Defaults returns the configuration used when nothing has been stored.
func Defaults() Config {
	return Config{
		UI: UI{
			PriceFormat:     PriceFormatSymbol,
			DateFormat:      DateFormatUS,
			UrgencyMessages: true,
			StockCounts:     true,
			ShowFees:        true,
			ButtonText:      "Buy Now",
			Currency:        "USD",
		},
		API: API{
			ResponseFormat:          ResponseNested,
			IncludeFees:             true,
			PriceField:              "price",
			IncludeAvailability:     true,
			IncludePriceHistory:     true,
			IncludeDealScore:        true,
			IncludeValueScore:       true,
			IncludeSavingsInfo:      true,
			IncludeDemandIndicators: true,
			IncludeBundleOptions:    true,
			IncludeRefundPolicy:     true,
			IncludeTransferMethod:   true,
			IncludeSellerDetails:    true,
			IncludeDealFlags:        true,
			IncludePremiumFeatures:  true,
			IncludeRelativeValue:    true,
		},
		Content: Content{
			EventDescriptions: DescriptionsDetailed,
			VenueInfo:         VenueFull,
			ShowReviews:       false,
			ShowRatings:       false,
		},
	}
}

// Decode reads a stored document. Options missing from data keep their
// default values, so documents written by older builds stay loadable.
func Decode(data []byte) (Config, error) {
	cfg := Defaults()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults(), apperr.Invalid("malformed configuration: %v", err)
	}
	return cfg, nil
}

// Replace applies a replacement document on top of current. Every namespace
// present in patch replaces the stored one; option keys it leaves out fall
// back to defaults. Namespaces absent from patch are kept as they are.
func Replace(current Config, patch []byte) (Config, error) {
	var parts map[string]json.RawMessage
	if err := json.Unmarshal(patch, &parts); err != nil {
		return current, apperr.Invalid("configuration must be a JSON object: %v", err)
	}

	next := current
	defaults := Defaults()
	if raw, ok := parts["ui"]; ok {
		next.UI = defaults.UI
		if err := unmarshalNamespace("ui", raw, &next.UI); err != nil {
			return current, err
		}
	}
	if raw, ok := parts["api"]; ok {
		next.API = defaults.API
		if err := unmarshalNamespace("api", raw, &next.API); err != nil {
			return current, err
		}
	}
	if raw, ok := parts["content"]; ok {
		next.Content = defaults.Content
		if err := unmarshalNamespace("content", raw, &next.Content); err != nil {
			return current, err
		}
	}
	return next, nil
}

func unmarshalNamespace(name string, raw json.RawMessage, dest any) error {
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return apperr.Invalid("malformed %s namespace: %v", name, err)
	}
	return nil
}

// Validate rejects option values outside their documented sets.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return apperr.Invalid("%s", err.Error())
	}
	return nil
}
