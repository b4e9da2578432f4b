package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixmarket/internal/shared/apperr"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, PriceFormatSymbol, cfg.UI.PriceFormat)
	assert.Equal(t, "USD", cfg.UI.Currency)
	assert.Equal(t, ResponseNested, cfg.API.ResponseFormat)
	assert.True(t, cfg.API.IncludeRelativeValue)
	assert.False(t, cfg.Content.ShowReviews)
}

func TestDecodeFillsMissingOptions(t *testing.T) {
	cfg, err := Decode([]byte(`{"ui":{"currency":"EUR"},"api":{"includeFees":false}}`))
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.UI.Currency)
	assert.Equal(t, DateFormatUS, cfg.UI.DateFormat)
	assert.False(t, cfg.API.IncludeFees)
	assert.True(t, cfg.API.IncludeDealScore)
	assert.Equal(t, VenueFull, cfg.Content.VenueInfo)

	cfg, err = Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, err = Decode([]byte(`{"ui":`))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestReplaceSwapsWholeNamespaces(t *testing.T) {
	current := Defaults()
	current.UI.Currency = "GBP"
	current.UI.ButtonText = "Grab them"
	current.API.IncludeFees = false
	current.Content.VenueInfo = VenueNameOnly

	next, err := Replace(current, []byte(`{"ui":{"dateFormat":"full"},"api":{"responseFormat":"flat"}}`))
	require.NoError(t, err)

	// provided namespaces reset to defaults before the patch applies
	assert.Equal(t, DateFormatFull, next.UI.DateFormat)
	assert.Equal(t, "USD", next.UI.Currency)
	assert.Equal(t, "Buy Now", next.UI.ButtonText)
	assert.Equal(t, ResponseFlat, next.API.ResponseFormat)
	assert.True(t, next.API.IncludeFees)

	// absent namespaces are untouched
	assert.Equal(t, VenueNameOnly, next.Content.VenueInfo)
}

func TestReplaceIgnoresUnknownKeys(t *testing.T) {
	next, err := Replace(Defaults(), []byte(`{"theme":"dark","content":{"eventDescriptions":"brief","extra":1}}`))
	require.NoError(t, err)
	assert.Equal(t, DescriptionsBrief, next.Content.EventDescriptions)
}

func TestReplaceRejectsMalformedInput(t *testing.T) {
	_, err := Replace(Defaults(), []byte(`["ui"]`))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = Replace(Defaults(), []byte(`{"api":{"includeFees":"yes"}}`))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"price format", func(c *Config) { c.UI.PriceFormat = "emoji" }},
		{"date format", func(c *Config) { c.UI.DateFormat = "DD.MM.YYYY" }},
		{"currency", func(c *Config) { c.UI.Currency = "JPY" }},
		{"response format", func(c *Config) { c.API.ResponseFormat = "xml" }},
		{"descriptions", func(c *Config) { c.Content.EventDescriptions = "long" }},
		{"venue info", func(c *Config) { c.Content.VenueInfo = "map" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), apperr.ErrInvalidInput)
		})
	}
}
