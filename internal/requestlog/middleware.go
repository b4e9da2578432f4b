package requestlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxCapturedBody   = 1 << 20
	maxStoredResponse = 50000
)

// bodyWriter copies what the handler writes, up to maxCapturedBody bytes.
type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) capture(b []byte) {
	room := maxCapturedBody - w.buf.Len()
	if room <= 0 {
		return
	}
	if len(b) > room {
		b = b[:room]
	}
	w.buf.Write(b)
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.capture(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

// Middleware records every request not listed in skipPaths.
func Middleware(svc Service, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		var requestBody json.RawMessage
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.Request.Body != nil {
				raw, err := io.ReadAll(c.Request.Body)
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewReader(raw))
					requestBody = asJSON(raw)
				}
			}
		}

		writer := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		elapsed := time.Since(start)
		entry := buildEntry(c, writer.buf.Bytes(), requestBody, elapsed)
		svc.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

func buildEntry(c *gin.Context, captured []byte, requestBody json.RawMessage, elapsed time.Duration) Entry {
	req := c.Request
	size := c.Writer.Size()
	if size < 0 {
		size = 0
	}

	query := map[string]string{}
	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	params := map[string]string{}
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	userAgent := req.Header.Get("User-Agent")
	if userAgent == "" {
		userAgent = "unknown"
	}
	ms := elapsed.Milliseconds()

	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Method:    req.Method,
		Path:      req.URL.Path,
		FullPath:  req.URL.RequestURI(),
		Query:     query,
		Params:    params,
		Body:      requestBody,
		Headers: Headers{
			UserAgent:   userAgent,
			Referer:     optionalHeader(req.Header, "Referer"),
			Origin:      optionalHeader(req.Header, "Origin"),
			Accept:      optionalHeader(req.Header, "Accept"),
			ContentType: optionalHeader(req.Header, "Content-Type"),
		},
		IP:                 c.ClientIP(),
		StatusCode:         c.Writer.Status(),
		ResponseBody:       asJSON(captured),
		ResponseBodyString: displayBody(captured, size),
		ResponseSize:       size,
		ResponseSummary:    summarize(captured),
		Duration:           ms,
		DurationFormatted:  strconv.FormatInt(ms, 10) + "ms",
		IsAgent:            IsAgent(req.Header),
	}
}

func optionalHeader(h http.Header, key string) *string {
	v := h.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// asJSON keeps valid JSON as is and wraps anything else in a JSON string.
func asJSON(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return append(json.RawMessage(nil), raw...)
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}

func displayBody(raw []byte, size int) string {
	if len(raw) == 0 {
		return ""
	}
	text := string(raw)
	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		text = pretty.String()
	}
	if len(text) > maxStoredResponse {
		text = text[:maxStoredResponse] + fmt.Sprintf("\n... (truncated, %d total bytes)", size)
	}
	return text
}

func summarize(raw []byte) *Summary {
	if len(raw) == 0 {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}

	switch v := parsed.(type) {
	case []any:
		n := len(v)
		keys := []string{}
		if n > 0 {
			if first, ok := v[0].(map[string]any); ok {
				keys = sortedKeys(first)
			}
		}
		return &Summary{Type: "array", Length: &n, FirstItemKeys: keys}
	case map[string]any:
		nested := false
		for _, child := range v {
			switch child.(type) {
			case []any, map[string]any:
				nested = true
			}
		}
		return &Summary{Type: "object", Keys: sortedKeys(v), HasNestedData: &nested}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
