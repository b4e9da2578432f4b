package requestlog

import (
	"encoding/json"
	"sort"
	"strings"

	"tixmarket/pkg/money"
)

const (
	defaultQueryLimit = 100
	statsWindow       = 100
	topN              = 10
)

// Filter applies q to entries given newest first.
func Filter(newest []Entry, q Query) []Entry {
	method := strings.ToUpper(q.Method)
	search := strings.ToLower(q.Search)

	out := make([]Entry, 0, len(newest))
	for _, e := range newest {
		if q.AgentOnly && !e.IsAgent {
			continue
		}
		if q.Path != "" && !strings.Contains(e.Path, q.Path) {
			continue
		}
		if method != "" && e.Method != method {
			continue
		}
		if q.StatusCode != nil && e.StatusCode != *q.StatusCode {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matchesSearch(e Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Path), needle) ||
		strings.Contains(strings.ToLower(e.Headers.UserAgent), needle) {
		return true
	}
	query, _ := json.Marshal(e.Query)
	return strings.Contains(strings.ToLower(string(query)), needle)
}

// ComputeStats summarises all entries (oldest first) and breaks down the
// most recent ones by status, method, path and agent.
func ComputeStats(chronological []Entry) Stats {
	total := len(chronological)
	agents := 0
	for _, e := range chronological {
		if e.IsAgent {
			agents++
		}
	}

	recent := chronological
	if len(recent) > statsWindow {
		recent = recent[len(recent)-statsWindow:]
	}

	statusCodes := map[int]int{}
	methods := map[string]int{}
	paths := newCounter()
	agentUAs := newCounter()
	for _, e := range recent {
		statusCodes[e.StatusCode]++
		methods[e.Method]++
		paths.add(e.Path)
		if e.IsAgent {
			ua := e.Headers.UserAgent
			if ua == "" {
				ua = "unknown"
			}
			agentUAs.add(ua)
		}
	}

	stats := Stats{
		Total:           total,
		AgentRequests:   agents,
		RegularRequests: total - agents,
		RecentStats: RecentStats{
			StatusCodes: statusCodes,
			Methods:     methods,
			TopPaths:    []PathCount{},
			TopAgents:   []AgentCount{},
		},
	}
	if total > 0 {
		stats.AgentPercentage = money.Round2(100 * float64(agents) / float64(total))
	}
	for _, kv := range paths.top(topN) {
		stats.RecentStats.TopPaths = append(stats.RecentStats.TopPaths, PathCount{Path: kv.key, Count: kv.count})
	}
	for _, kv := range agentUAs.top(topN) {
		stats.RecentStats.TopAgents = append(stats.RecentStats.TopAgents, AgentCount{Agent: kv.key, Count: kv.count})
	}
	return stats
}

type keyCount struct {
	key   string
	count int
}

// counter tallies keys and remembers first-seen order to break ties.
type counter struct {
	index map[string]int
	items []keyCount
}

func newCounter() *counter {
	return &counter{index: map[string]int{}}
}

func (c *counter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.items[i].count++
		return
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, keyCount{key: key, count: 1})
}

func (c *counter) top(n int) []keyCount {
	out := append([]keyCount(nil), c.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
