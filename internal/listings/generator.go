package listings

import (
	"fmt"
	"time"

	"tixmarket/internal/zones"
	"tixmarket/pkg/clock"
	"tixmarket/pkg/money"
	"tixmarket/pkg/randsrc"
)

var (
	sectionPool = []string{
		"Section 101", "Section 102", "Section 128", "Section 205", "Section 206",
		"Floor A", "Floor B", "Upper Deck", "Lower Level",
		"Section 301", "Section 302", "Club Level", "Premium Seating", "Section 219",
	}
	rowPool            = []string{"A", "B", "C", "D", "E", "F", "1", "2", "3", "4", "5", "10", "15", "20", "23", "25"}
	deliveryMethodPool = []string{"Mobile Transfer", "E-Ticket", "Will Call", "Standard Mail"}
	sellerPool         = []string{
		"TrustedSeller123", "TicketMaster99", "EventPro2024", "SecureTix",
		"VerifiedVendor", "QuickTickets", "ReliableResale", "SafeSeats",
	}
	notesPool = [][]string{
		{"Great seats", "Aisle access"},
		{"Obstructed view"},
		{"Premium location"},
		{"Center section"},
		{"Near restrooms"},
		{"VIP access", "Backstage pass"},
		{"Wheelchair accessible"},
		{"Limited view"},
		{"Best value"},
		{"Selling fast"},
		{"Clear view"},
		{},
		{},
		{},
	}
	transferMethodPool = []string{"mobile-only", "instant", "delayed", "standard"}
	refundPolicyPool   = []string{"full_refund_7days", "partial_refund", "no_refund", "exchange_only"}
)

const (
	minListings      = 5
	listingsSpread   = 11
	maxSeatsPerOffer = 8
	maxStartSeat     = 50
	listingWindow    = 30 * 24 * time.Hour

	serviceFeeRate     = 0.08
	fulfillmentFeeRate = 0.02
	platformFeeRate    = 0.01
)

// Generator builds the synthetic listing inventory for an event.
type Generator struct {
	rnd   randsrc.Source
	clock clock.Clock
}

func NewGenerator(rnd randsrc.Source, clk clock.Clock) *Generator {
	return &Generator{rnd: rnd, clock: clk}
}

// Generate produces 5-15 listings priced around basePrice. Listing ids are
// eventID*1000 + position.
func (g *Generator) Generate(eventID int, basePrice float64) []Listing {
	now := g.clock.Now()
	count := minListings + g.rnd.Intn(listingsSpread)
	out := make([]Listing, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.listing(now, eventID*1000+i+1, eventID, basePrice))
	}
	return out
}

// History synthesizes price history for a listing priced at currentPrice.
func (g *Generator) History(currentPrice float64, listedAt time.Time) []PriceEntry {
	return SynthesizeHistory(g.rnd, g.clock.Now(), currentPrice, listedAt)
}

func (g *Generator) listing(now time.Time, id, eventID int, basePrice float64) Listing {
	section := pick(g.rnd, sectionPool)
	row := pick(g.rnd, rowPool)

	quantity := 1 + g.rnd.Intn(maxSeatsPerOffer)
	start := 1 + g.rnd.Intn(maxStartSeat)
	seats := make([]int, quantity)
	for j := range seats {
		seats[j] = start + j
	}

	price := money.Round2(basePrice * (0.5 + g.rnd.Float64()*1.5))
	if price < 0.01 {
		price = 0.01
	}

	l := Listing{
		ID:             id,
		EventID:        eventID,
		Section:        section,
		Row:            row,
		Seats:          seats,
		Quantity:       quantity,
		PricePerTicket: price,
		BasePrice:      price,
		FeesIncluded:   g.rnd.Float64() < 0.3,
	}
	if !l.FeesIncluded {
		l.ServiceFee = money.Round2(price * serviceFeeRate)
		l.FulfillmentFee = money.Round2(price * fulfillmentFeeRate)
		l.PlatformFee = money.Round2(price * platformFeeRate)
		l.Fees = money.Round2(l.ServiceFee + l.FulfillmentFee + l.PlatformFee)
	}

	l.SellerRating = money.Round1(3.5 + g.rnd.Float64()*1.5)
	l.DeliveryMethod = pick(g.rnd, deliveryMethodPool)
	l.SellerName = pick(g.rnd, sellerPool)
	l.Notes = append([]string{}, notesPool[g.rnd.Intn(len(notesPool))]...)
	l.ListedAt = now.Add(-time.Duration(g.rnd.Float64() * float64(listingWindow)))
	l.ImageURL = fmt.Sprintf("https://picsum.photos/seed/listing-%d/400/300", id)

	l.SeatType = zones.ClassifySeat(section, row, l.Notes)
	l.StadiumZone = zones.ForSection(section)
	l.FieldProximity = zones.FieldProximity(section, row)
	l.RowElevation, _ = zones.RowNumber(row)
	l.SeatLocation = zones.Locate(seats, section)
	l.SeatsAdjacent = zones.Adjacent(seats)
	l.DealFlags = GenerateDealFlags(g.rnd, price, basePrice, section, l.Notes)

	days := DaysSince(now, l.ListedAt)
	l.PriceHistory = SynthesizeHistory(g.rnd, now, price, l.ListedAt)
	l.Price7DaysAgo, l.PriceChangePercent = PriceChange(price, l.PriceHistory, days)

	l.ViewCount = g.rnd.Intn(500) + 10
	l.ViewsLast24h = int(float64(l.ViewCount) * (0.1 + g.rnd.Float64()*0.3))
	l.SoldCount = g.rnd.Intn(20)
	l.SoldRecently = g.rnd.Float64() < 0.3
	l.PriceTrend = TrendFor(l.PriceChangePercent)
	l.DemandLevel = DemandFor(l.ViewCount)

	l.SellerVerified = g.rnd.Float64() < 0.7
	l.SellerTransactionCount = g.rnd.Intn(500) + 10
	l.RefundPolicy = pick(g.rnd, refundPolicyPool)
	l.TransferMethod = pick(g.rnd, transferMethodPool)

	l.BundleOptions = g.bundle(l.StadiumZone)
	l.PremiumFeatures = PremiumFeatures(l.BundleOptions, l.StadiumZone)
	return l
}

func (g *Generator) bundle(zone zones.Zone) *BundleOptions {
	b := &BundleOptions{}
	if g.rnd.Float64() < 0.2 {
		if g.rnd.Float64() < 0.5 {
			b.Parking = &ParkingOption{Included: true}
		} else {
			b.Parking = &ParkingOption{Included: true, Price: money.Round2(20 + g.rnd.Float64()*30)}
		}
	}
	if zone == zones.ZoneClub && g.rnd.Float64() < 0.5 {
		b.ClubAccess = true
	}
	if g.rnd.Float64() < 0.1 {
		b.VIPAccess = true
	}
	if g.rnd.Float64() < 0.05 {
		b.BackstagePass = true
	}
	if g.rnd.Float64() < 0.15 {
		credit := money.Round2(10 + g.rnd.Float64()*40)
		b.FoodCredit = &credit
	}
	if b.IsEmpty() {
		return nil
	}
	return b
}

// PremiumFeatures lists the perks implied by bundle options and zone.
func PremiumFeatures(b *BundleOptions, zone zones.Zone) []string {
	var features []string
	if b != nil {
		if b.ClubAccess {
			features = append(features, "Club Lounge Access")
		}
		if b.VIPAccess {
			features = append(features, "VIP Entry")
		}
		if b.BackstagePass {
			features = append(features, "Backstage Pass")
		}
	}
	if zone == zones.ZoneClub {
		features = append(features, "Premium Seating")
	}
	return features
}

func pick[T any](rnd randsrc.Source, pool []T) T {
	return pool[rnd.Intn(len(pool))]
}
