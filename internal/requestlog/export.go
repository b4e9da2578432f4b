package requestlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"Timestamp", "Method", "Path", "Status Code", "Duration (ms)", "Is Agent", "User Agent", "IP", "Response Size"}

// WriteCSV writes entries in the order given, one row each.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		agent := "No"
		if e.IsAgent {
			agent = "Yes"
		}
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.Method,
			e.Path,
			strconv.Itoa(e.StatusCode),
			strconv.FormatInt(e.Duration, 10),
			agent,
			e.Headers.UserAgent,
			e.IP,
			strconv.Itoa(e.ResponseSize),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names a download after the UTC day it was taken.
func ExportFilename(now time.Time, ext string) string {
	return "request-logs-" + now.UTC().Format("2006-01-02") + "." + ext
}
