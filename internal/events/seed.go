package events

// DefaultSeeds is the event catalog loaded at startup.
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Event: Event{
				ID:     1,
				Title:  "Taylor Swift: The Eras Tour",
				Artist: "Taylor Swift",
				Date:   "2024-06-15",
				Time:   "19:00",
				Venue: Venue{
					Name:    "Madison Square Garden",
					Address: "4 Pennsylvania Plaza, New York, NY 10001",
					City:    "New York",
					State:   "NY",
				},
				Category:    "Concert",
				Description: "Experience the magic of Taylor Swift's Eras Tour featuring songs from all her iconic albums.",
			},
			BasePrice: 299.99,
		},
		{
			Event: Event{
				ID:     2,
				Title:  "Hamilton - Broadway",
				Artist: "Lin-Manuel Miranda",
				Date:   "2024-07-20",
				Time:   "20:00",
				Venue: Venue{
					Name:    "Richard Rodgers Theatre",
					Address: "226 W 46th St, New York, NY 10036",
					City:    "New York",
					State:   "NY",
				},
				Category:    "Theater",
				Description: "The revolutionary musical about Alexander Hamilton and the founding of America.",
			},
			BasePrice: 189.50,
		},
		{
			Event: Event{
				ID:     3,
				Title:  "Los Angeles Lakers vs Golden State Warriors",
				Artist: "NBA",
				Date:   "2024-08-10",
				Time:   "19:30",
				Venue: Venue{
					Name:    "Crypto.com Arena",
					Address: "1111 S Figueroa St, Los Angeles, CA 90015",
					City:    "Los Angeles",
					State:   "CA",
				},
				Category:    "Sports",
				Description: "Watch the Lakers take on the Warriors in this highly anticipated matchup.",
			},
			BasePrice: 125.00,
		},
		{
			Event: Event{
				ID:     4,
				Title:  "Ed Sheeran: + - = ÷ x Tour",
				Artist: "Ed Sheeran",
				Date:   "2024-09-05",
				Time:   "20:00",
				Venue: Venue{
					Name:    "Wembley Stadium",
					Address: "Wembley, London HA9 0WS, UK",
					City:    "London",
					State:   "",
				},
				Category:    "Concert",
				Description: "Ed Sheeran performs his greatest hits in this spectacular stadium show.",
			},
			BasePrice: 89.99,
		},
		{
			Event: Event{
				ID:     5,
				Title:  "The Phantom of the Opera",
				Artist: "Andrew Lloyd Webber",
				Date:   "2024-10-12",
				Time:   "19:30",
				Venue: Venue{
					Name:    "Majestic Theatre",
					Address: "245 W 44th St, New York, NY 10036",
					City:    "New York",
					State:   "NY",
				},
				Category:    "Theater",
				Description: "The longest-running show in Broadway history, featuring the iconic music of Andrew Lloyd Webber.",
			},
			BasePrice: 150.00,
		},
		{
			Event: Event{
				ID:     6,
				Title:  "Boston Celtics vs Miami Heat",
				Artist: "NBA",
				Date:   "2024-11-20",
				Time:   "20:00",
				Venue: Venue{
					Name:    "TD Garden",
					Address: "100 Legends Way, Boston, MA 02114",
					City:    "Boston",
					State:   "MA",
				},
				Category:    "Sports",
				Description: "Eastern Conference rivalry game between the Celtics and Heat.",
			},
			BasePrice: 110.00,
		},
	}
}
