package requestlog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAgent(t *testing.T) {
	browser := "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15 Safari/605.1.15"
	cases := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{"curl", map[string]string{"User-Agent": "curl/8.4.0"}, true},
		{"crawler with browser headers", map[string]string{"User-Agent": "Googlebot/2.1", "Accept-Language": "en"}, true},
		{"llm client", map[string]string{"User-Agent": "ClaudeBot/1.0", "Accept": "text/html"}, true},
		{"browser", map[string]string{"User-Agent": browser, "Accept": "text/html,application/xhtml+xml"}, false},
		{"browser fetch", map[string]string{"User-Agent": browser, "Accept": "application/json", "Sec-Fetch-Mode": "cors"}, false},
		{"bare user agent", map[string]string{"User-Agent": browser, "Accept": "application/json"}, true},
		{"no headers at all", map[string]string{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tc.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tc.want, IsAgent(h))
		})
	}
}
