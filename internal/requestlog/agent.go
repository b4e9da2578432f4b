package requestlog

import (
	"net/http"
	"strings"
)

var agentPatterns = []string{
	"bot", "crawler", "spider", "scraper", "agent",
	"curl", "wget", "python", "node", "axios", "fetch",
	"postman", "insomnia", "httpie", "go-http-client",
	"googlebot", "bingbot", "slurp", "duckduckbot",
	"baiduspider", "yandexbot", "facebookexternalhit",
	"twitterbot", "linkedinbot", "whatsapp", "telegram",
	"discordbot", "slackbot", "anthropic", "openai",
	"claude", "gpt", "chatgpt", "perplexity", "bard",
	"gemini", "copilot", "bingchat",
}

// IsAgent reports whether a request looks automated: its user agent matches
// a known client or crawler, or it carries a user agent but none of the
// headers browsers send.
func IsAgent(h http.Header) bool {
	ua := strings.ToLower(h.Get("User-Agent"))
	for _, pattern := range agentPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}

	browserLike := strings.Contains(h.Get("Accept"), "text/html") ||
		h.Get("Accept-Language") != "" ||
		h.Get("Sec-Fetch-Mode") != ""
	return !browserLike && ua != ""
}
