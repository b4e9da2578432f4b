// Package zones classifies seats by their section/row descriptors. Every
// function here is pure and deterministic.
package zones

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type Zone string

const (
	ZoneLowerBowl Zone = "lower_bowl"
	ZoneClub      Zone = "club"
	ZoneMezzanine Zone = "mezzanine"
	ZoneUpperDeck Zone = "upper_deck"
)

type SeatType string

const (
	SeatTypeSeated         SeatType = "seated"
	SeatTypeStandingRoom   SeatType = "standing_room"
	SeatTypeObstructedView SeatType = "obstructed_view"
	SeatTypeAisle          SeatType = "aisle"
)

type SeatLocation string

const (
	LocationCorner  SeatLocation = "corner"
	LocationAisle   SeatLocation = "aisle"
	LocationCenter  SeatLocation = "center"
	LocationMidRow  SeatLocation = "mid-row"
	LocationUnknown SeatLocation = "unknown"
)

var sectionNumber = regexp.MustCompile(`^\s*(?:section\s*)?(\d+)`)

// ForSection maps a section label to a stadium zone. Labels that match no
// rule land in the lower bowl.
func ForSection(section string) Zone {
	label := strings.ToLower(section)
	n, numbered := parseSectionNumber(label)

	switch {
	case strings.Contains(label, "floor"), strings.Contains(label, "premium"), numbered && n >= 100 && n <= 199:
		return ZoneLowerBowl
	case strings.Contains(label, "club"):
		return ZoneClub
	case strings.Contains(label, "mezz"), numbered && n >= 200 && n <= 299:
		return ZoneMezzanine
	case strings.Contains(label, "upper"), numbered && n >= 300 && n <= 499:
		return ZoneUpperDeck
	}
	return ZoneLowerBowl
}

func parseSectionNumber(label string) (int, bool) {
	m := sectionNumber.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RowNumber converts a row label to its ordinal: leading digits are parsed as
// an integer, otherwise the first letter maps A=1, B=2, ...
func RowNumber(row string) (int, bool) {
	row = strings.TrimSpace(row)
	if row == "" {
		return 0, false
	}
	end := 0
	for end < len(row) && row[end] >= '0' && row[end] <= '9' {
		end++
	}
	if end > 0 {
		n, err := strconv.Atoi(row[:end])
		if err == nil {
			return n, true
		}
	}
	first := unicode.ToUpper([]rune(row)[0])
	if first >= 'A' && first <= 'Z' {
		return int(first-'A') + 1, true
	}
	return 0, false
}

var zoneBaseProximity = map[Zone]int{
	ZoneLowerBowl: 8,
	ZoneClub:      7,
	ZoneMezzanine: 5,
	ZoneUpperDeck: 3,
}

// FieldProximity scores closeness to the field on a 1-10 scale.
func FieldProximity(section, row string) int {
	score, ok := zoneBaseProximity[ForSection(section)]
	if !ok {
		score = 5
	}
	if n, ok := RowNumber(row); ok {
		switch {
		case n <= 5:
			score++
		case n >= 20:
			score--
		}
	}
	return clamp(score, 1, 10)
}

// ClassifySeat derives the seat type from the section label and listing notes.
func ClassifySeat(section, row string, notes []string) SeatType {
	sectionLower := strings.ToLower(section)
	notesLower := strings.ToLower(strings.Join(notes, " "))

	switch {
	case strings.Contains(sectionLower, "standing"), strings.Contains(notesLower, "standing room"):
		return SeatTypeStandingRoom
	case strings.Contains(notesLower, "obstructed"), strings.Contains(notesLower, "limited view"):
		return SeatTypeObstructedView
	case strings.Contains(notesLower, "aisle"):
		return SeatTypeAisle
	}
	return SeatTypeSeated
}

// Locate places a run of seats within its row.
func Locate(seats []int, section string) SeatLocation {
	if len(seats) == 0 {
		return LocationUnknown
	}
	sorted := append([]int(nil), seats...)
	sort.Ints(sorted)
	first, last := sorted[0], sorted[len(sorted)-1]

	switch {
	case first <= 5 || last >= 45:
		return LocationCorner
	case first <= 10 || last >= 40:
		return LocationAisle
	case first >= 20 && last <= 30:
		return LocationCenter
	}
	return LocationMidRow
}

// Adjacent reports whether seats form one consecutive run of two or more.
func Adjacent(seats []int) bool {
	if len(seats) < 2 {
		return false
	}
	for i := 1; i < len(seats); i++ {
		if seats[i] != seats[i-1]+1 {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
