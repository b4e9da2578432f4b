package events

import "time"

// DateLayout is the storage layout of Event.Date.
const DateLayout = "2006-01-02"

type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// Event is immutable once seeded.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       Venue  `json:"venue"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Day parses Date. Malformed dates yield the zero time.
func (e Event) Day() time.Time {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Seed pairs an event with the base price its listings are generated around.
type Seed struct {
	Event     Event
	BasePrice float64
}
