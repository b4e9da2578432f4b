package zones

import "strings"

// StadiumMap is venue metadata attached to full venue projections.
type StadiumMap struct {
	MidfieldOrientation  []string     `json:"midfieldOrientation"`
	RoofCoverage         string       `json:"roofCoverage"`
	EntryTunnelProximity string       `json:"entryTunnelProximity"`
	SectionQuality       map[Zone]int `json:"sectionQuality"`
}

type venueOverride struct {
	keys        []string
	orientation []string
	roof        string
}

var venueOverrides = []venueOverride{
	{keys: []string{"madison square garden", "msg"}, orientation: []string{"Section 101-115", "Section 201-215"}, roof: "covered"},
	{keys: []string{"crypto", "staples"}, orientation: []string{"Section 101-120", "Section 201-220"}, roof: "covered"},
	{keys: []string{"wembley"}, orientation: []string{"Section 101-130", "Section 201-230"}, roof: "partial"},
	{keys: []string{"td garden"}, orientation: []string{"Section 101-112", "Section 201-212"}, roof: "covered"},
}

// StadiumMapFor looks up map metadata by venue name, falling back to defaults.
func StadiumMapFor(venueName string) StadiumMap {
	m := StadiumMap{
		MidfieldOrientation:  []string{"Section 101-110", "Section 201-210"},
		RoofCoverage:         "partial",
		EntryTunnelProximity: "near",
		SectionQuality: map[Zone]int{
			ZoneLowerBowl: 9,
			ZoneClub:      8,
			ZoneMezzanine: 6,
			ZoneUpperDeck: 4,
		},
	}

	name := strings.ToLower(venueName)
	for _, o := range venueOverrides {
		for _, key := range o.keys {
			if strings.Contains(name, key) {
				m.MidfieldOrientation = o.orientation
				m.RoofCoverage = o.roof
				return m
			}
		}
	}
	return m
}
