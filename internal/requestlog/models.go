package requestlog

import (
	"encoding/json"
	"time"
)

// Headers is the subset of request headers kept with each entry.
type Headers struct {
	UserAgent   string  `json:"user-agent"`
	Referer     *string `json:"referer"`
	Origin      *string `json:"origin"`
	Accept      *string `json:"accept"`
	ContentType *string `json:"content-type"`
}

// Summary describes the shape of a JSON response body.
type Summary struct {
	Type          string   `json:"type"`
	Length        *int     `json:"length,omitempty"`
	FirstItemKeys []string `json:"firstItemKeys,omitempty"`
	Keys          []string `json:"keys,omitempty"`
	HasNestedData *bool    `json:"hasNestedData,omitempty"`
}

// Entry is one served request. ResponseBody is kept in memory only; sinks
// receive the truncated ResponseBodyString.
type Entry struct {
	ID                 string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Timestamp          time.Time         `json:"timestamp" gorm:"not null;index"`
	Method             string            `json:"method" gorm:"type:varchar(10);index"`
	Path               string            `json:"path" gorm:"index"`
	FullPath           string            `json:"fullPath"`
	Query              map[string]string `json:"query" gorm:"serializer:json"`
	Params             map[string]string `json:"params" gorm:"serializer:json"`
	Body               json.RawMessage   `json:"body" gorm:"serializer:json"`
	Headers            Headers           `json:"headers" gorm:"serializer:json"`
	IP                 string            `json:"ip" gorm:"type:varchar(64)"`
	StatusCode         int               `json:"statusCode" gorm:"index"`
	ResponseBody       json.RawMessage   `json:"responseBody" gorm:"-"`
	ResponseBodyString string            `json:"responseBodyString" gorm:"type:text"`
	ResponseSize       int               `json:"responseSize"`
	ResponseSummary    *Summary          `json:"responseSummary" gorm:"serializer:json"`
	Duration           int64             `json:"duration"`
	DurationFormatted  string            `json:"durationFormatted"`
	IsAgent            bool              `json:"isAgent" gorm:"index"`
}

func (Entry) TableName() string {
	return "request_logs"
}

// Query selects entries for the log viewer. Zero values mean "any".
type Query struct {
	Limit      int
	AgentOnly  bool
	Path       string
	Method     string
	StatusCode *int
	Search     string
}

type QueryResult struct {
	Total    int     `json:"total"`
	Filtered int     `json:"filtered"`
	Logs     []Entry `json:"logs"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type AgentCount struct {
	Agent string `json:"agent"`
	Count int    `json:"count"`
}

type RecentStats struct {
	StatusCodes map[int]int    `json:"statusCodes"`
	Methods     map[string]int `json:"methods"`
	TopPaths    []PathCount    `json:"topPaths"`
	TopAgents   []AgentCount   `json:"topAgents"`
}

type Stats struct {
	Total           int         `json:"total"`
	AgentRequests   int         `json:"agentRequests"`
	RegularRequests int         `json:"regularRequests"`
	AgentPercentage float64     `json:"agentPercentage"`
	RecentStats     RecentStats `json:"recentStats"`
}
