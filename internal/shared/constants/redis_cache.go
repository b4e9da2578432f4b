package constants

import (
	"fmt"
	"time"
)

// Redis key layout
// Pattern: tixmarket:{module}:{operation}:{identifier?}

const TTL_SCENARIO_LIST = 5 * time.Minute // scenario presets rarely change on disk

const keyPrefix = "tixmarket"

// Settings
const (
	SettingsActiveKey = keyPrefix + ":settings:active"
	ScenarioListKey   = keyPrefix + ":settings:scenarios"
)

// Cart
const CartKey = keyPrefix + ":cart:items"

// RateLimitKey namespaces a sliding-window counter by route class and client.
func RateLimitKey(class, client string) string {
	return fmt.Sprintf("%s:ratelimit:%s:%s", keyPrefix, class, client)
}
