package requestlog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func entry(i int, method, path string, status int, agent bool, ua string) Entry {
	return Entry{
		ID:         fmt.Sprintf("id-%d", i),
		Timestamp:  base.Add(time.Duration(i) * time.Second),
		Method:     method,
		Path:       path,
		Query:      map[string]string{},
		Headers:    Headers{UserAgent: ua},
		StatusCode: status,
		Duration:   int64(i),
		IsAgent:    agent,
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		r.Add(entry(i, "GET", "/", 200, false, "x"))
	}
	require.Equal(t, 3, r.Len())

	chrono := r.Chronological()
	assert.Equal(t, "id-3", chrono[0].ID)
	assert.Equal(t, "id-5", chrono[2].ID)
	assert.Equal(t, "id-5", r.Newest()[0].ID)

	r.Clear()
	assert.Zero(t, r.Len())
}

func TestFilter(t *testing.T) {
	newest := []Entry{
		entry(5, "GET", "/api/events/1/listings", 200, true, "curl/8"),
		entry(4, "POST", "/api/cart", 400, false, "Mozilla"),
		entry(3, "GET", "/api/events", 200, false, "Mozilla"),
		entry(2, "GET", "/api/search", 200, true, "python-requests"),
		entry(1, "PUT", "/api/listings/1001/notes", 404, false, "Mozilla"),
	}
	newest[3].Query = map[string]string{"q": "Garden"}

	ids := func(entries []Entry) []string {
		out := []string{}
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"id-5", "id-2"}, ids(Filter(newest, Query{AgentOnly: true})))
	assert.Equal(t, []string{"id-5", "id-3"}, ids(Filter(newest, Query{Path: "/api/events"})))
	assert.Equal(t, []string{"id-4"}, ids(Filter(newest, Query{Method: "post"})))

	notFound := 404
	assert.Equal(t, []string{"id-1"}, ids(Filter(newest, Query{StatusCode: &notFound})))
	assert.Equal(t, []string{"id-2"}, ids(Filter(newest, Query{Search: "garden"})))
	assert.Equal(t, []string{"id-5"}, ids(Filter(newest, Query{Search: "CURL"})))
	assert.Equal(t, []string{"id-5", "id-4"}, ids(Filter(newest, Query{Limit: 2})))
	assert.Len(t, Filter(newest, Query{}), 5)
}

func TestComputeStats(t *testing.T) {
	var chrono []Entry
	for i := 0; i < 120; i++ {
		switch {
		case i%4 == 0:
			chrono = append(chrono, entry(i, "GET", "/api/events", 200, true, "curl/8"))
		case i%4 == 1:
			chrono = append(chrono, entry(i, "POST", "/api/cart", 400, false, "Mozilla"))
		default:
			chrono = append(chrono, entry(i, "GET", "/api/search", 200, false, "Mozilla"))
		}
	}

	stats := ComputeStats(chrono)
	assert.Equal(t, 120, stats.Total)
	assert.Equal(t, 30, stats.AgentRequests)
	assert.Equal(t, 90, stats.RegularRequests)
	assert.Equal(t, 25.0, stats.AgentPercentage)

	// breakdowns cover the last 100 entries only
	recent := stats.RecentStats
	assert.Equal(t, 75, recent.StatusCodes[200])
	assert.Equal(t, 25, recent.StatusCodes[400])
	assert.Equal(t, map[string]int{"GET": 75, "POST": 25}, recent.Methods)
	require.Len(t, recent.TopPaths, 3)
	assert.Equal(t, PathCount{Path: "/api/search", Count: 50}, recent.TopPaths[0])
	assert.Equal(t, []AgentCount{{Agent: "curl/8", Count: 25}}, recent.TopAgents)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AgentPercentage)
	assert.NotNil(t, stats.RecentStats.TopPaths)
	assert.NotNil(t, stats.RecentStats.TopAgents)
}

func TestWriteCSV(t *testing.T) {
	e := entry(1, "GET", "/api/events", 200, true, `Weird, "quoted" agent`)
	e.IP = "10.0.0.1"
	e.ResponseSize = 512

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Entry{e}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2024-06-01T12:00:01Z", "GET", "/api/events", "200", "1", "Yes", `Weird, "quoted" agent`, "10.0.0.1", "512"}, rows[1])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "request-logs-2024-06-01.csv", ExportFilename(base, "csv"))
}
